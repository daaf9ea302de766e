package desktop

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/fs/core"
)

// RemoveRecursively removes p and everything below it, children first.
// Directories are made writable before their entries are removed. The first
// failure aborts the removal.
//
// The filesystem root and the user's home directory are never removed.
func (d *Desktop) RemoveRecursively(ctx context.Context, p core.Path) error {
	if p.NeedsDevice() {
		return notLocal("removeRecursively", p)
	}
	if !p.IsAbsolute() {
		return notAbsolute("removeRecursively", p)
	}

	li, err := d.fs.Lstat(p.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return wrapFS(err, "Cannot remove %q", p.Path)
	}
	return d.removeTree(ctx, p.Path, li)
}

func (d *Desktop) removeTree(ctx context.Context, name string, li fs.FileInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if li.Mode()&fs.ModeSymlink != 0 || !li.IsDir() {
		if err := d.fs.Remove(name); err != nil {
			return wrapFS(err, "Failed to remove file %q", name)
		}
		return nil
	}

	if err := d.guard(name); err != nil {
		return err
	}

	if li.Mode().Perm()&0o200 == 0 {
		_ = os.Chmod(name, li.Mode().Perm()|0o200)
	}

	children, err := d.fs.ReadDir(name)
	if err != nil {
		return wrapFS(err, "Failed to remove directory %q", name)
	}
	for _, child := range children {
		if err := d.removeTree(ctx, path.Join(name, child.Name()), child); err != nil {
			return err
		}
	}

	if err := d.fs.Remove(name); err != nil {
		return wrapFS(err, "Failed to remove directory %q", name)
	}
	return nil
}

// guard refuses to remove the root directory and the home directory.
func (d *Desktop) guard(dir string) error {
	canonical := canonicalPath(dir)

	if canonical == "/" {
		d.logger.Warn("refusing recursive remove", "path", dir, "reason", "root")
		return perrors.WithPath(
			perrors.New(perrors.CodeForbidden, "Refusing to remove root directory."), dir)
	}

	if home, err := d.home(); err == nil && home != "" && canonicalPath(home) == canonical {
		d.logger.Warn("refusing recursive remove", "path", dir, "reason", "home")
		return perrors.WithPath(
			perrors.New(perrors.CodeForbidden, "Refusing to remove your home directory."), dir)
	}
	return nil
}

// canonicalPath resolves symbolic links and relative elements. If the path
// cannot be resolved the cleaned absolute path is returned.
func canonicalPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = p
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return filepath.ToSlash(resolved)
	}
	return filepath.ToSlash(filepath.Clean(abs))
}
