package errors

import (
	"fmt"
	"strings"
)

// FromStderr builds an error for a failed command. The code is derived from
// the command's standard error text and the message is the formatted prefix
// followed by the trimmed stderr, so it can be shown to a user as-is.
func FromStderr(stderr string, format string, args ...interface{}) PlatformError {
	msg := fmt.Sprintf(format, args...)
	if detail := strings.TrimSpace(stderr); detail != "" {
		msg = msg + ": " + detail
	}
	return New(ClassifyStderr(stderr), msg)
}

// ClassifyStderr maps common Unix utility diagnostics onto error codes.
func ClassifyStderr(stderr string) ErrorCode {
	switch {
	case contains(stderr, "no such file", "not found", "does not exist", "cannot stat"):
		return CodeNotFound
	case contains(stderr, "permission denied", "operation not permitted", "read-only file system"):
		return CodeForbidden
	case contains(stderr, "not a directory", "is a directory", "invalid argument", "invalid option",
		"unrecognized option", "illegal option"):
		return CodeInvalidInput
	case contains(stderr, "file exists", "already exists"):
		return CodeAlreadyExists
	case contains(stderr, "connection refused", "connection reset", "could not resolve",
		"broken pipe", "host key verification failed"):
		return CodeNetwork
	case contains(stderr, "timed out", "timeout"):
		return CodeTimeout
	default:
		return CodeExecutionFailed
	}
}

// contains checks if any of the patterns exist in the text (case-insensitive).
func contains(text string, patterns ...string) bool {
	lowText := strings.ToLower(text)
	for _, pattern := range patterns {
		if strings.Contains(lowText, pattern) {
			return true
		}
	}
	return false
}
