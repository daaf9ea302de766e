package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := Newf(CodeNotFound, "no such path %q", "/x")

	assert.Equal(t, CodeNotFound, err.Code())
	assert.Equal(t, ClassificationPermanent, err.Classification())
	assert.Equal(t, `no such path "/x"`, err.Error())
	assert.Nil(t, err.Unwrap())
	assert.Nil(t, err.Context())
}

func TestClassificationDefaults(t *testing.T) {
	assert.True(t, New(CodeTimeout, "t").Classification().IsRetryable())
	assert.True(t, New(CodeNetwork, "n").Classification().IsRetryable())
	assert.True(t, New(CodeUnavailable, "u").Classification().IsRetryable())
	assert.False(t, New(CodeForbidden, "f").Classification().IsRetryable())
	assert.Equal(t, ClassificationPermanent, New(ErrorCode("CUSTOM"), "c").Classification())
}

func TestWrap(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, CodeInternal, "ignored"))
		assert.Nil(t, Wrapf(nil, CodeInternal, "ignored %d", 1))
	})

	t.Run("preserves cause", func(t *testing.T) {
		sentinel := stderrors.New("disk on fire")
		err := Wrapf(sentinel, CodeExecutionFailed, "cannot write %s", "/a")

		require.Error(t, err)
		assert.True(t, Is(err, sentinel))
		assert.Equal(t, "cannot write /a: disk on fire", err.Error())
	})

	t.Run("keeps inner classification", func(t *testing.T) {
		inner := New(CodeNetwork, "connection reset")
		err := Wrap(inner, CodeExecutionFailed, "copy failed")

		assert.Equal(t, CodeExecutionFailed, err.Code())
		assert.Equal(t, ClassificationRetryable, err.Classification())
	})

	t.Run("identical cause message not repeated", func(t *testing.T) {
		inner := stderrors.New("same")
		err := Wrap(inner, CodeUnknown, "same")
		assert.Equal(t, "same", err.Error())
	})
}

func TestWithContext(t *testing.T) {
	assert.Nil(t, WithContext(nil, "k", "v"))

	err := WithContext(New(CodeNotFound, "gone"), "path", "/a")
	err = WithContext(err, "exit", 1)

	assert.Equal(t, CodeNotFound, err.Code())
	assert.Equal(t, map[string]interface{}{"path": "/a", "exit": 1}, err.Context())

	// Context returns a copy.
	err.Context()["path"] = "/b"
	assert.Equal(t, "/a", err.Context()["path"])
}

func TestWithPathAndCommand(t *testing.T) {
	err := WithPath(New(CodeForbidden, "Refusing to remove root directory."), "/")
	err = WithCommand(err, "rm -rf -- /", 1)

	assert.Equal(t, CodeForbidden, err.Code())
	assert.Equal(t, map[string]interface{}{
		ContextPath:     "/",
		ContextCommand:  "rm -rf -- /",
		ContextExitCode: 1,
	}, err.Context())
	assert.Nil(t, WithCommand(nil, "true", 0))
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("stat: %w", New(CodeNotFound, "gone"))

	assert.True(t, HasCode(err, CodeNotFound))
	assert.True(t, HasCode(err, CodeForbidden, CodeNotFound))
	assert.False(t, HasCode(err, CodeForbidden))
	assert.False(t, HasCode(nil, CodeUnknown))
}

func TestWithContextOnStandardError(t *testing.T) {
	base := fmt.Errorf("plain")
	err := WithContext(base, "k", "v")

	assert.Equal(t, CodeUnknown, err.Code())
	assert.True(t, Is(err, base))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, CodeUnknown, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("x")))
	assert.Equal(t, ClassificationPermanent, GetClassification(nil))
	assert.False(t, IsRetryable(stderrors.New("x")))

	wrapped := fmt.Errorf("outer: %w", New(CodeTimeout, "slow"))
	assert.Equal(t, CodeTimeout, GetCode(wrapped))
	assert.True(t, IsRetryable(wrapped))

	var pe PlatformError
	require.True(t, As(wrapped, &pe))
	assert.Equal(t, "slow", pe.Message())
}

func TestClassifyStderr(t *testing.T) {
	tests := []struct {
		stderr string
		want   ErrorCode
	}{
		{"rm: cannot remove '/x': No such file or directory", CodeNotFound},
		{"mkdir: cannot create directory '/root/x': Permission denied", CodeForbidden},
		{"touch: /proc/x: Operation not permitted", CodeForbidden},
		{"cp: -r not specified; omitting directory 'a': Is a directory", CodeInvalidInput},
		{"mkdir: cannot create directory 'a': File exists", CodeAlreadyExists},
		{"ssh: connect to host h port 22: Connection refused", CodeNetwork},
		{"dd: something odd", CodeExecutionFailed},
		{"", CodeExecutionFailed},
	}

	for _, tt := range tests {
		t.Run(string(tt.want)+"/"+tt.stderr, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStderr(tt.stderr))
		})
	}
}

func TestFromStderr(t *testing.T) {
	err := FromStderr("cp: cannot stat 'a': No such file or directory\n",
		"Failed to copy file %q to %q", "a", "b")

	assert.Equal(t, CodeNotFound, err.Code())
	assert.Equal(t, `Failed to copy file "a" to "b": cp: cannot stat 'a': No such file or directory`, err.Error())

	empty := FromStderr("  ", "Failed reading file %q", "/x")
	assert.Equal(t, `Failed reading file "/x"`, empty.Error())
}

func TestToJSON(t *testing.T) {
	assert.Nil(t, ToJSON(nil))

	err := WithPath(New(CodeForbidden, "Refusing to remove root directory."), "/")
	resp := ToJSON(fmt.Errorf("wrapped: %w", err))

	require.NotNil(t, resp)
	assert.Equal(t, "FORBIDDEN", resp.Code)
	assert.Equal(t, "Refusing to remove root directory.", resp.Message)
	assert.Equal(t, "PERMANENT", resp.Classification)
	assert.Equal(t, "/", resp.Context["path"])

	plain := ToJSON(stderrors.New("boom"))
	assert.Equal(t, "UNKNOWN", plain.Code)
	assert.Equal(t, "boom", plain.Message)
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(New(CodeNotImplemented, "copyFile is not implemented for ssh"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"NOT_IMPLEMENTED","message":"copyFile is not implemented for ssh","classification":"PERMANENT"}`, string(data))
}

func TestToJSONContextErrors(t *testing.T) {
	resp := ToJSON(fmt.Errorf("ssh: %w", context.DeadlineExceeded))
	assert.Equal(t, "TIMEOUT", resp.Code)
	assert.Equal(t, "RETRYABLE", resp.Classification)

	resp = ToJSON(context.Canceled)
	assert.Equal(t, "EXECUTION_FAILED", resp.Code)
}
