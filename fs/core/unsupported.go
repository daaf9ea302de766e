package core

import (
	"context"
	"time"
)

// Unsupported implements Access with every query answering false and every
// other operation failing with an error wrapping ErrUnsupported. Backends
// embed it and override the operations they provide.
type Unsupported struct{}

var _ Access = Unsupported{}

func (Unsupported) Exists(context.Context, Path) bool              { return false }
func (Unsupported) IsFile(context.Context, Path) bool              { return false }
func (Unsupported) IsDirectory(context.Context, Path) bool         { return false }
func (Unsupported) IsSymlink(context.Context, Path) bool           { return false }
func (Unsupported) IsExecutableFile(context.Context, Path) bool    { return false }
func (Unsupported) IsReadableFile(context.Context, Path) bool      { return false }
func (Unsupported) IsWritableFile(context.Context, Path) bool      { return false }
func (Unsupported) IsReadableDirectory(context.Context, Path) bool { return false }
func (Unsupported) IsWritableDirectory(context.Context, Path) bool { return false }

func (Unsupported) EnsureWritableDirectory(_ context.Context, p Path) error {
	return NotImplemented("ensureWritableDirectory", p)
}

func (Unsupported) EnsureExistingFile(_ context.Context, p Path) error {
	return NotImplemented("ensureExistingFile", p)
}

func (Unsupported) CreateDirectory(_ context.Context, p Path) error {
	return NotImplemented("createDirectory", p)
}

func (Unsupported) RemoveFile(_ context.Context, p Path) error {
	return NotImplemented("removeFile", p)
}

func (Unsupported) RemoveRecursively(_ context.Context, p Path) error {
	return NotImplemented("removeRecursively", p)
}

func (Unsupported) RenameFile(_ context.Context, src, _ Path) error {
	return NotImplemented("renameFile", src)
}

func (Unsupported) CopyFile(_ context.Context, src, _ Path) error {
	return NotImplemented("copyFile", src)
}

func (Unsupported) CopyRecursively(_ context.Context, src, _ Path) error {
	return NotImplemented("copyRecursively", src)
}

func (Unsupported) SymlinkTarget(_ context.Context, p Path) (Path, error) {
	return Path{}, NotImplemented("symLinkTarget", p)
}

func (Unsupported) Permissions(_ context.Context, p Path) (Permissions, error) {
	return 0, NotImplemented("permissions", p)
}

func (Unsupported) SetPermissions(_ context.Context, p Path, _ Permissions) error {
	return NotImplemented("setPermissions", p)
}

func (Unsupported) FileSize(context.Context, Path) int64         { return -1 }
func (Unsupported) BytesAvailable(context.Context, Path) int64   { return -1 }
func (Unsupported) FileID(context.Context, Path) string          { return "" }
func (Unsupported) LastModified(context.Context, Path) time.Time { return time.Time{} }
func (Unsupported) Stat(context.Context, Path) StatInfo          { return StatInfo{Size: -1} }
func (Unsupported) OSType(context.Context, Path) OSType          { return OSUnknown }

func (Unsupported) IterateDirectory(_ context.Context, p Path, _ Filter, _ Callback) error {
	return NotImplemented("iterateDirectory", p)
}

func (Unsupported) ReadFile(_ context.Context, p Path, _, _ int64) ([]byte, error) {
	return nil, NotImplemented("fileContents", p)
}

func (Unsupported) WriteFile(_ context.Context, p Path, _ []byte, _ int64) (int64, error) {
	return 0, NotImplemented("writeFileContents", p)
}

func (Unsupported) CreateTempFile(_ context.Context, p Path) (Path, error) {
	return Path{}, NotImplemented("createTempFile", p)
}

func (Unsupported) Environment(_ context.Context, p Path) (map[string]string, error) {
	return nil, NotImplemented("deviceEnvironment", p)
}

// EnsureWritableDirectory is the usual implementation of
// Access.EnsureWritableDirectory: accept an existing writable directory,
// otherwise create it.
func EnsureWritableDirectory(ctx context.Context, a Access, p Path) error {
	if a.IsWritableDirectory(ctx, p) {
		return nil
	}
	return a.CreateDirectory(ctx, p)
}
