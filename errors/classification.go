package errors

// ErrorClassification indicates whether an error should trigger a retry.
type ErrorClassification string

const (
	// ClassificationRetryable marks failures of the channel to a device,
	// which may succeed when repeated.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent marks failures that repeat on every attempt.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable reports whether the classification suggests a retry.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// classification returns the default classification for a code. Only
// transport problems are retryable; everything a device reports about its
// files is permanent.
func (c ErrorCode) classification() ErrorClassification {
	switch c {
	case CodeTimeout, CodeNetwork, CodeUnavailable:
		return ClassificationRetryable
	default:
		return ClassificationPermanent
	}
}
