package core

import (
	"context"
	"time"

	"github.com/jmgilman/devaccess/exec"
)

// Access is the set of file operations every backend provides for the
// devices it serves.
//
// Query operations never fail: they report false, zero or -1 when the answer
// cannot be determined. All other operations return an error whose message
// is suitable for display.
type Access interface {
	// Exists reports whether anything exists at p.
	Exists(ctx context.Context, p Path) bool
	IsFile(ctx context.Context, p Path) bool
	IsDirectory(ctx context.Context, p Path) bool
	IsSymlink(ctx context.Context, p Path) bool
	IsExecutableFile(ctx context.Context, p Path) bool
	IsReadableFile(ctx context.Context, p Path) bool
	IsWritableFile(ctx context.Context, p Path) bool
	IsReadableDirectory(ctx context.Context, p Path) bool
	IsWritableDirectory(ctx context.Context, p Path) bool

	// EnsureWritableDirectory succeeds if p is a writable directory after
	// the call, creating it if needed.
	EnsureWritableDirectory(ctx context.Context, p Path) error

	// EnsureExistingFile creates an empty file at p unless one exists.
	EnsureExistingFile(ctx context.Context, p Path) error

	// CreateDirectory creates p and any missing parents.
	CreateDirectory(ctx context.Context, p Path) error

	RemoveFile(ctx context.Context, p Path) error

	// RemoveRecursively removes p and everything below it. Backends refuse
	// paths that are too shallow to remove safely.
	RemoveRecursively(ctx context.Context, p Path) error

	// RenameFile moves src to dst on the same device.
	RenameFile(ctx context.Context, src, dst Path) error

	// CopyFile copies a single file to dst on the same device. A dst on
	// another device is rejected with OtherDevice; the package level
	// CopyFile copies between devices.
	CopyFile(ctx context.Context, src, dst Path) error

	// CopyRecursively copies the directory src into the directory dst on
	// the same device. Copies between devices go through a copier built on
	// a Router, such as tarpipe.Copier.
	CopyRecursively(ctx context.Context, src, dst Path) error

	// SymlinkTarget returns the resolved target of a symbolic link.
	SymlinkTarget(ctx context.Context, p Path) (Path, error)

	Permissions(ctx context.Context, p Path) (Permissions, error)
	SetPermissions(ctx context.Context, p Path, perms Permissions) error

	// FileSize returns the size in bytes, or -1 if unknown.
	FileSize(ctx context.Context, p Path) int64

	// BytesAvailable returns the free space of the volume holding p, or -1.
	BytesAvailable(ctx context.Context, p Path) int64

	// FileID returns an identifier that is stable across renames, used for
	// equality and hard link detection. It is empty if unknown.
	FileID(ctx context.Context, p Path) string

	LastModified(ctx context.Context, p Path) time.Time
	Stat(ctx context.Context, p Path) StatInfo
	OSType(ctx context.Context, p Path) OSType

	// IterateDirectory reports the entries below p that pass filter, never
	// including p itself. Iteration ends early when cb returns Stop.
	IterateDirectory(ctx context.Context, p Path, filter Filter, cb Callback) error

	// ReadFile reads up to limit bytes starting at offset. A negative limit
	// reads to the end of the file.
	ReadFile(ctx context.Context, p Path, limit, offset int64) ([]byte, error)

	// WriteFile writes data at offset, creating the file if needed, and
	// returns the number of bytes written. Bytes before offset are kept and
	// the file ends after the written range.
	WriteFile(ctx context.Context, p Path, data []byte, offset int64) (int64, error)

	// CreateTempFile creates a new, empty file from a template whose
	// trailing run of X characters is replaced by random characters.
	CreateTempFile(ctx context.Context, template Path) (Path, error)

	// Environment returns the environment variables of the device.
	Environment(ctx context.Context, p Path) (map[string]string, error)
}

// ProcessStarter is implemented by backends that can run commands on their
// devices. Recursive copy uses it to stream archives between devices.
type ProcessStarter interface {
	// SearchInPath returns the full path of an executable found in the
	// device's PATH.
	SearchInPath(ctx context.Context, p Path, name string) (Path, error)

	// StartProcess launches a command on the device of p.
	StartProcess(ctx context.Context, p Path, cmd exec.CommandLine) (*exec.Process, error)
}
