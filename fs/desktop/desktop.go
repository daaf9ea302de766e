package desktop

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"runtime"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/exec"
	"github.com/jmgilman/devaccess/fs/core"
)

// Desktop serves local paths through direct OS calls.
type Desktop struct {
	core.Unsupported

	fs       billy.Filesystem
	executor exec.Executor
	logger   *slog.Logger
	home     func() (string, error)
	maxTries int
}

var (
	_ core.Access         = (*Desktop)(nil)
	_ core.ProcessStarter = (*Desktop)(nil)
)

// Option configures a Desktop.
type Option func(*Desktop)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(d *Desktop) {
		d.logger = l
	}
}

// WithExecutor sets the executor used by StartProcess.
func WithExecutor(e exec.Executor) Option {
	return func(d *Desktop) {
		d.executor = e
	}
}

// WithTempTries bounds the attempts CreateTempFile makes to find a free name.
func WithTempTries(n int) Option {
	return func(d *Desktop) {
		d.maxTries = n
	}
}

// New creates a Desktop backend.
func New(opts ...Option) *Desktop {
	d := &Desktop{
		fs:       osfs.New("/"),
		executor: exec.New(exec.WithInheritEnv()),
		logger:   slog.New(slog.DiscardHandler),
		home:     os.UserHomeDir,
		maxTries: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Desktop) stat(p core.Path) (fs.FileInfo, bool) {
	if !p.IsAbsolute() {
		return nil, false
	}
	fi, err := d.fs.Stat(p.Path)
	return fi, err == nil
}

// Exists reports whether p exists. Relative and empty paths never exist:
// billy resolves them against / while system calls use the working
// directory.
func (d *Desktop) Exists(_ context.Context, p core.Path) bool {
	_, ok := d.stat(p)
	return ok
}

// IsFile reports whether p is a regular file, following symbolic links.
func (d *Desktop) IsFile(_ context.Context, p core.Path) bool {
	fi, ok := d.stat(p)
	return ok && fi.Mode().IsRegular()
}

// IsDirectory reports whether p is a directory, following symbolic links.
func (d *Desktop) IsDirectory(_ context.Context, p core.Path) bool {
	fi, ok := d.stat(p)
	return ok && fi.IsDir()
}

// IsSymlink reports whether p itself is a symbolic link.
func (d *Desktop) IsSymlink(_ context.Context, p core.Path) bool {
	if !p.IsAbsolute() {
		return false
	}
	fi, err := d.fs.Lstat(p.Path)
	return err == nil && fi.Mode()&fs.ModeSymlink != 0
}

// IsExecutableFile reports whether p is a file the process may execute.
func (d *Desktop) IsExecutableFile(ctx context.Context, p core.Path) bool {
	return d.IsFile(ctx, p) && access(p.Path, accessExecute)
}

// IsReadableFile reports whether p is a file the process may read.
func (d *Desktop) IsReadableFile(ctx context.Context, p core.Path) bool {
	return d.IsFile(ctx, p) && access(p.Path, accessRead)
}

// IsWritableFile reports whether p is a file the process may write.
func (d *Desktop) IsWritableFile(ctx context.Context, p core.Path) bool {
	return d.IsFile(ctx, p) && access(p.Path, accessWrite)
}

// IsReadableDirectory reports whether p is a directory the process may list.
func (d *Desktop) IsReadableDirectory(ctx context.Context, p core.Path) bool {
	return d.IsDirectory(ctx, p) && access(p.Path, accessRead)
}

// IsWritableDirectory reports whether p is a directory the process may
// create entries in.
func (d *Desktop) IsWritableDirectory(ctx context.Context, p core.Path) bool {
	return d.IsDirectory(ctx, p) && access(p.Path, accessWrite)
}

// EnsureWritableDirectory creates p unless it already is a writable
// directory.
func (d *Desktop) EnsureWritableDirectory(ctx context.Context, p core.Path) error {
	return core.EnsureWritableDirectory(ctx, d, p)
}

// EnsureExistingFile creates an empty file at p unless something exists
// there.
func (d *Desktop) EnsureExistingFile(ctx context.Context, p core.Path) error {
	if !p.IsAbsolute() {
		return notAbsolute("ensureExistingFile", p)
	}
	if d.Exists(ctx, p) {
		return nil
	}
	f, err := d.fs.OpenFile(p.Path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return wrapFS(err, "Could not create file %q", p.Path)
	}
	return wrapFS(f.Close(), "Could not create file %q", p.Path)
}

// CreateDirectory creates p and any missing parents.
func (d *Desktop) CreateDirectory(_ context.Context, p core.Path) error {
	if !p.IsAbsolute() {
		return notAbsolute("createDirectory", p)
	}
	return wrapFS(d.fs.MkdirAll(p.Path, 0o755), "Could not create directory %q", p.Path)
}

// RemoveFile removes a file or an empty directory.
func (d *Desktop) RemoveFile(_ context.Context, p core.Path) error {
	if !p.IsAbsolute() {
		return notAbsolute("removeFile", p)
	}
	return wrapFS(d.fs.Remove(p.Path), "Failed to remove file %q", p.Path)
}

// RenameFile moves src to dst on the local machine.
func (d *Desktop) RenameFile(_ context.Context, src, dst core.Path) error {
	if err := sameDeviceAbsolute("rename", src, dst); err != nil {
		return err
	}
	return wrapFS(d.fs.Rename(src.Path, dst.Path), "Failed to rename %q to %q", src.Path, dst.Path)
}

// CopyRecursively copies file by file. There is no archive streaming on the
// local machine.
func (d *Desktop) CopyRecursively(ctx context.Context, src, dst core.Path) error {
	if err := sameDeviceAbsolute("copy", src, dst); err != nil {
		return err
	}
	r := core.Single(d)
	if err := core.CheckCopyRecursively(ctx, r, src, dst); err != nil {
		return err
	}
	return core.CopyTree(ctx, r, src, dst)
}

// SymlinkTarget returns the target of the link at p. A relative target is
// resolved against the link's directory.
func (d *Desktop) SymlinkTarget(_ context.Context, p core.Path) (core.Path, error) {
	if !p.IsAbsolute() {
		return core.Path{}, notAbsolute("symlinkTarget", p)
	}
	target, err := d.fs.Readlink(p.Path)
	if err != nil {
		return core.Path{}, wrapFS(err, "Cannot resolve symbolic link %q", p.Path)
	}
	if !path.IsAbs(target) {
		target = path.Join(path.Dir(p.Path), target)
	}
	return p.WithPath(path.Clean(target)), nil
}

// Permissions returns the mode bits of p.
func (d *Desktop) Permissions(_ context.Context, p core.Path) (core.Permissions, error) {
	if !p.IsAbsolute() {
		return 0, notAbsolute("permissions", p)
	}
	fi, err := d.fs.Stat(p.Path)
	if err != nil {
		return 0, wrapFS(err, "Cannot read permissions of %q", p.Path)
	}
	return core.PermissionsFromMode(uint32(fi.Mode().Perm())), nil
}

// SetPermissions changes the mode bits. billy has no chmod, so this goes to
// the os package directly.
func (d *Desktop) SetPermissions(_ context.Context, p core.Path, perms core.Permissions) error {
	if !p.IsAbsolute() {
		return notAbsolute("setPermissions", p)
	}
	return wrapFS(os.Chmod(p.Path, perms.Mode()), "Cannot set permissions of %q", p.Path)
}

// FileSize returns the size of p in bytes, or -1.
func (d *Desktop) FileSize(_ context.Context, p core.Path) int64 {
	fi, ok := d.stat(p)
	if !ok {
		return -1
	}
	return fi.Size()
}

// BytesAvailable returns the free space of the filesystem holding p, or -1.
func (d *Desktop) BytesAvailable(_ context.Context, p core.Path) int64 {
	if !p.IsAbsolute() {
		return -1
	}
	return bytesAvailable(p.Path)
}

// FileID returns "device:inode" for p, or an empty string.
func (d *Desktop) FileID(_ context.Context, p core.Path) string {
	if !p.IsAbsolute() {
		return ""
	}
	return fileID(p.Path)
}

// LastModified returns the modification time of p, or the zero time.
func (d *Desktop) LastModified(_ context.Context, p core.Path) time.Time {
	fi, ok := d.stat(p)
	if !ok {
		return time.Time{}
	}
	return fi.ModTime()
}

// Stat reports everything known about p in one call. A dangling symbolic
// link is reported with FlagSymlink only.
func (d *Desktop) Stat(_ context.Context, p core.Path) core.StatInfo {
	info := core.StatInfo{Size: -1}
	if !p.IsAbsolute() {
		return info
	}

	li, err := d.fs.Lstat(p.Path)
	if err != nil {
		return info
	}

	var flags core.FileFlags
	if li.Mode()&fs.ModeSymlink != 0 {
		flags |= core.FlagSymlink
	}

	fi, err := d.fs.Stat(p.Path)
	if err != nil {
		// Dangling symbolic link.
		info.Flags = flags
		return info
	}

	flags |= core.FlagExists
	if fi.IsDir() {
		flags |= core.FlagDirectory
		if runtime.GOOS == "darwin" && strings.HasSuffix(p.Path, ".app") {
			flags |= core.FlagBundle
		}
	}
	if fi.Mode().IsRegular() {
		flags |= core.FlagFile
	}

	clean := path.Clean(p.Path)
	if clean == "/" {
		flags |= core.FlagRoot
	} else if strings.HasPrefix(path.Base(clean), ".") {
		flags |= core.FlagHidden
	}

	return core.StatInfo{
		Size:         fi.Size(),
		LastModified: fi.ModTime(),
		Flags:        flags.WithPermissions(core.PermissionsFromMode(uint32(fi.Mode().Perm()))),
	}
}

// OSType returns the operating system the process runs on.
func (d *Desktop) OSType(context.Context, core.Path) core.OSType {
	switch runtime.GOOS {
	case "linux":
		return core.OSLinux
	case "darwin":
		return core.OSMac
	case "windows":
		return core.OSWindows
	default:
		return core.OSOtherUnix
	}
}

// Environment returns the environment of the current process.
func (d *Desktop) Environment(context.Context, core.Path) (map[string]string, error) {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env, nil
}

func notAbsolute(op string, p core.Path) error {
	return perrors.WithPath(
		perrors.Newf(perrors.CodeInvalidInput, "%s: %q is not an absolute path", op, p.Path), p.Path)
}

// sameDeviceAbsolute checks the operands of a two-path operation. The
// destination must be on the same device as the source.
func sameDeviceAbsolute(op string, src, dst core.Path) error {
	if !src.SameDevice(dst) {
		return core.OtherDevice(op, src, dst)
	}
	if !src.IsAbsolute() {
		return notAbsolute(op, src)
	}
	if !dst.IsAbsolute() {
		return notAbsolute(op, dst)
	}
	return nil
}

func notLocal(op string, p core.Path) error {
	return perrors.Newf(perrors.CodeInvalidInput, "%s: %s is not a local path", op, p)
}
