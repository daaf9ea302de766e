package errors

import "errors"

// Context keys attached by the device backends.
const (
	ContextPath     = "path"
	ContextCommand  = "command"
	ContextExitCode = "exit_code"
)

// WithContext adds a single context field to an error.
// Existing context fields are preserved.
//
// If err is not a PlatformError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithContext(err error, key string, value interface{}) PlatformError {
	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithPath records the path an error is about.
//
// Example:
//
//	return errors.WithPath(errors.New(errors.CodeForbidden, "Refusing to remove root directory."), "/")
func WithPath(err error, path string) PlatformError {
	return WithContext(err, ContextPath, path)
}

// WithCommand records the command line that failed and its exit code.
func WithCommand(err error, command string, exitCode int) PlatformError {
	return WithContextMap(err, map[string]interface{}{
		ContextCommand:  command,
		ContextExitCode: exitCode,
	})
}

// WithContextMap adds multiple context fields to an error. New fields
// override existing ones with the same key.
// Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	var pe PlatformError
	if !errors.As(err, &pe) {
		pe = &platformError{
			code:           CodeUnknown,
			classification: ClassificationPermanent,
			message:        err.Error(),
			cause:          err,
		}
	}

	merged := pe.Context()
	if merged == nil {
		merged = make(map[string]interface{}, len(ctx))
	}
	for k, v := range ctx {
		merged[k] = v
	}

	return &platformError{
		code:           pe.Code(),
		classification: pe.Classification(),
		message:        pe.Message(),
		context:        merged,
		cause:          pe.Unwrap(),
	}
}
