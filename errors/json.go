package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
)

// ErrorResponse is what devfs --json prints for a failed command.
type ErrorResponse struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Classification string                 `json:"classification"`
	Context        map[string]interface{} `json:"context,omitempty"`
}

// ToJSON flattens err into an ErrorResponse. The cause chain is reduced to
// the outermost PlatformError; a plain error becomes CodeUnknown unless it
// is a context cancellation or deadline. Returns nil if err is nil.
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	var pe PlatformError
	switch {
	case As(err, &pe):
	case stderrors.Is(err, context.DeadlineExceeded):
		pe = Wrap(err, CodeTimeout, err.Error())
	case stderrors.Is(err, context.Canceled):
		pe = Wrap(err, CodeExecutionFailed, err.Error())
	default:
		pe = Wrap(err, CodeUnknown, err.Error())
	}

	return &ErrorResponse{
		Code:           string(pe.Code()),
		Message:        pe.Message(),
		Classification: string(pe.Classification()),
		Context:        pe.Context(),
	}
}

func (e *platformError) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToJSON(e))
}
