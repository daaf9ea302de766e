package desktop

import (
	"errors"
	"io/fs"

	perrors "github.com/jmgilman/devaccess/errors"
)

// wrapFS wraps an error returned by the local filesystem with a code
// derived from its kind.
func wrapFS(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	code := perrors.CodeExecutionFailed
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = perrors.CodeNotFound
	case errors.Is(err, fs.ErrPermission):
		code = perrors.CodeForbidden
	case errors.Is(err, fs.ErrExist):
		code = perrors.CodeAlreadyExists
	}
	return perrors.Wrapf(err, code, format, args...)
}
