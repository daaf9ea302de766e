package core

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

var errMemStop = errors.New("stop")

// memAccess is a minimal Access over an in-memory billy filesystem used to
// exercise the helpers in this package.
type memAccess struct {
	Unsupported
	fs billy.Filesystem

	copies int
}

func newMemAccess() *memAccess {
	return &memAccess{fs: memfs.New()}
}

func (m *memAccess) write(p, content string) {
	if err := util.WriteFile(m.fs, p, []byte(content), 0o644); err != nil {
		panic(err)
	}
}

func (m *memAccess) Exists(_ context.Context, p Path) bool {
	_, err := m.fs.Stat(p.Path)
	return err == nil
}

func (m *memAccess) IsDirectory(_ context.Context, p Path) bool {
	fi, err := m.fs.Stat(p.Path)
	return err == nil && fi.IsDir()
}

func (m *memAccess) IsWritableDirectory(ctx context.Context, p Path) bool {
	return m.IsDirectory(ctx, p)
}

func (m *memAccess) CreateDirectory(_ context.Context, p Path) error {
	return m.fs.MkdirAll(p.Path, 0o755)
}

func (m *memAccess) EnsureWritableDirectory(ctx context.Context, p Path) error {
	return EnsureWritableDirectory(ctx, m, p)
}

func (m *memAccess) ReadFile(_ context.Context, p Path, limit, offset int64) ([]byte, error) {
	data, err := util.ReadFile(m.fs, p.Path)
	if err != nil {
		return nil, err
	}
	data = data[min(offset, int64(len(data))):]
	if limit >= 0 && limit < int64(len(data)) {
		data = data[:limit]
	}
	return data, nil
}

func (m *memAccess) WriteFile(_ context.Context, p Path, data []byte, _ int64) (int64, error) {
	if err := util.WriteFile(m.fs, p.Path, data, 0o644); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func (m *memAccess) CopyFile(ctx context.Context, src, dst Path) error {
	m.copies++
	data, err := m.ReadFile(ctx, src, -1, 0)
	if err != nil {
		return err
	}
	_, err = m.WriteFile(ctx, dst, data, 0)
	return err
}

func (m *memAccess) IterateDirectory(_ context.Context, p Path, filter Filter, cb Callback) error {
	err := util.Walk(m.fs, p.Path, func(name string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if name == p.Path {
			return nil
		}

		var descend error
		if fi.IsDir() && !filter.Recursive {
			descend = fs.SkipDir
		}
		if fi.IsDir() && !filter.WantsDirs() || !fi.IsDir() && !filter.WantsFiles() {
			return descend
		}
		if !matchAny(filter.NameFilters, path.Base(name)) {
			return descend
		}

		info := StatInfo{Size: fi.Size(), Flags: FlagExists}
		if cb.Call(p.WithPath(name), info) == Stop {
			return errMemStop
		}
		return descend
	})
	if errors.Is(err, errMemStop) {
		return nil
	}
	return err
}

func matchAny(patterns []string, name string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, name); ok {
			return true
		}
	}
	return false
}

func memPaths(m *memAccess, root string) []string {
	var out []string
	_ = util.Walk(m.fs, root, func(name string, fi os.FileInfo, err error) error {
		if err == nil && !fi.IsDir() {
			out = append(out, strings.TrimPrefix(name, root+"/"))
		}
		return nil
	})
	return out
}
