package errors

import (
	stderrors "errors"
	"fmt"
)

// PlatformError is the error value returned by device operations. Its
// message is complete on its own; the wrapped cause is kept for errors.Is
// and errors.As.
type PlatformError interface {
	error

	// Code identifies the kind of failure.
	Code() ErrorCode

	// Classification tells whether repeating the operation may help.
	Classification() ErrorClassification

	// Message is the text shown to a user.
	Message() string

	// Context holds the path, command or exit code the error is about.
	// Returns nil if none has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error, or nil.
	Unwrap() error
}

type platformError struct {
	code           ErrorCode
	classification ErrorClassification
	message        string
	context        map[string]interface{}
	cause          error
}

// New creates an error with the classification implied by code.
func New(code ErrorCode, message string) PlatformError {
	return &platformError{
		code:           code,
		classification: code.classification(),
		message:        message,
	}
}

// Newf creates an error with a formatted message.
//
// Example:
//
//	err := errors.Newf(errors.CodeInvalidInput, "path %q is not absolute", p)
func Newf(code ErrorCode, format string, args ...interface{}) PlatformError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches code and message to err. A PlatformError anywhere in err's
// chain keeps its classification, so a retryable network failure stays
// retryable when a caller re-labels it. Returns nil if err is nil.
func Wrap(err error, code ErrorCode, message string) PlatformError {
	if err == nil {
		return nil
	}

	classification := code.classification()
	var inner PlatformError
	if stderrors.As(err, &inner) {
		classification = inner.Classification()
	}

	return &platformError{
		code:           code,
		classification: classification,
		message:        message,
		cause:          err,
	}
}

// Wrapf is Wrap with a formatted message.
//
// Example:
//
//	if err := f.Close(); err != nil {
//	    return errors.Wrapf(err, errors.CodeExecutionFailed, "cannot close %q", path)
//	}
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// Error returns the message followed by the cause. Errors built from a
// failed command already embed its stderr, so a cause that repeats the
// message is dropped.
func (e *platformError) Error() string {
	if e.cause != nil && e.cause.Error() != e.message {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *platformError) Code() ErrorCode                     { return e.code }
func (e *platformError) Classification() ErrorClassification { return e.classification }
func (e *platformError) Message() string                     { return e.message }
func (e *platformError) Unwrap() error                       { return e.cause }

// Context returns a copy of the context map, or nil.
func (e *platformError) Context() map[string]interface{} {
	if e.context == nil {
		return nil
	}
	ctx := make(map[string]interface{}, len(e.context))
	for k, v := range e.context {
		ctx[k] = v
	}
	return ctx
}
