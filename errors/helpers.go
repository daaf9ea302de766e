package errors

import (
	stderrors "errors"
	"slices"
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the ErrorCode from the outermost PlatformError in err's
// chain. Returns CodeUnknown if err is nil or not a PlatformError.
//
// Example:
//
//	if errors.GetCode(err) == errors.CodeNotImplemented {
//	    // fall back to a generic implementation
//	}
func GetCode(err error) ErrorCode {
	var pe PlatformError
	if err != nil && stderrors.As(err, &pe) {
		return pe.Code()
	}
	return CodeUnknown
}

// HasCode reports whether err carries one of codes.
func HasCode(err error, codes ...ErrorCode) bool {
	return err != nil && slices.Contains(codes, GetCode(err))
}

// GetClassification extracts the ErrorClassification from an error.
// Returns ClassificationPermanent if err is nil or not a PlatformError.
func GetClassification(err error) ErrorClassification {
	var pe PlatformError
	if err != nil && stderrors.As(err, &pe) {
		return pe.Classification()
	}
	return ClassificationPermanent
}

// IsRetryable returns true if the error is classified as retryable.
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
