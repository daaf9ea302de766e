package core

import (
	"errors"
	"io/fs"

	perrors "github.com/jmgilman/devaccess/errors"
)

var (
	// ErrNotExist is returned when a file or directory does not exist.
	// Re-exported from io/fs for convenience.
	ErrNotExist = fs.ErrNotExist

	// ErrUnsupported is wrapped by every error returned for an operation a
	// backend does not implement.
	ErrUnsupported = errors.New("operation not supported")
)

// NotImplemented returns the error reported for an operation a backend does
// not provide for the given path.
func NotImplemented(op string, p Path) error {
	return perrors.Wrapf(ErrUnsupported, perrors.CodeNotImplemented,
		"%s is not implemented for %s", op, p)
}

// OtherDevice returns the error reported when a backend is asked to move or
// copy between src and dst on different devices. Callers copying across
// devices go through CopyFile or a Router-backed copier instead.
func OtherDevice(op string, src, dst Path) error {
	return perrors.WithPath(
		perrors.Newf(perrors.CodeInvalidInput, "Cannot %s %s to %s on another device", op, src, dst),
		dst.String())
}
