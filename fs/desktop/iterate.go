package desktop

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/jmgilman/devaccess/fs/core"
)

var errStop = errors.New("iteration stopped")

// IterateDirectory lists the entries below p. Hidden directories are not
// descended into unless FilterHidden is set.
func (d *Desktop) IterateDirectory(ctx context.Context, p core.Path, filter core.Filter, cb core.Callback) error {
	if !p.IsAbsolute() {
		return notAbsolute("iterateDirectory", p)
	}
	if !d.IsDirectory(ctx, p) {
		return nil
	}
	if filter.Recursive {
		return d.walk(ctx, p, filter, cb)
	}

	infos, err := d.fs.ReadDir(p.Path)
	if err != nil {
		return wrapFS(err, "Cannot list directory %q", p.Path)
	}
	for _, fi := range infos {
		if err := ctx.Err(); err != nil {
			return err
		}
		full := path.Join(p.Path, fi.Name())
		if !d.accept(full, fi.Name(), d.entryMode(full, fi.Mode()), filter) {
			continue
		}
		if d.deliver(ctx, p.WithPath(full), cb) == core.Stop {
			return nil
		}
	}
	return nil
}

func (d *Desktop) walk(ctx context.Context, p core.Path, filter core.Filter, cb core.Callback) error {
	root := path.Clean(p.Path)
	conf := fastwalk.Config{Follow: filter.FollowSymlinks}

	// fastwalk calls back from several goroutines; entries are delivered one
	// at a time.
	var mu sync.Mutex
	stopped := false

	err := fastwalk.Walk(&conf, root, func(full string, de fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		full = filepath.ToSlash(full)
		if full == root {
			return nil
		}

		name := de.Name()
		mode := d.entryMode(full, de.Type())

		var next error
		if de.IsDir() && !filter.Has(core.FilterHidden) && strings.HasPrefix(name, ".") {
			next = filepath.SkipDir
		}
		if !d.accept(full, name, mode, filter) {
			return next
		}

		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return errStop
		}
		if d.deliver(ctx, p.WithPath(full), cb) == core.Stop {
			stopped = true
			return errStop
		}
		return next
	})

	if errors.Is(err, errStop) {
		return nil
	}
	if err != nil {
		return wrapFS(err, "Cannot list directory %q", p.Path)
	}
	return nil
}

// entryMode returns the mode of the link target with ModeSymlink added for
// symbolic links, and mode unchanged otherwise.
func (d *Desktop) entryMode(full string, mode fs.FileMode) fs.FileMode {
	if mode&fs.ModeSymlink == 0 {
		return mode
	}
	if fi, err := d.fs.Stat(full); err == nil {
		return fi.Mode() | fs.ModeSymlink
	}
	return mode
}

func (d *Desktop) deliver(ctx context.Context, p core.Path, cb core.Callback) core.IterationPolicy {
	if !cb.WantsInfo() {
		return cb.Call(p, core.StatInfo{})
	}
	return cb.Call(p, d.Stat(ctx, p))
}

// accept applies the filter to one entry. For symbolic links mode carries
// the type of the target with ModeSymlink added.
func (d *Desktop) accept(full, name string, mode fs.FileMode, filter core.Filter) bool {
	if !filter.Has(core.FilterHidden) && strings.HasPrefix(name, ".") {
		return false
	}

	isLink := mode&fs.ModeSymlink != 0
	if isLink && filter.Has(core.FilterNoSymlinks) {
		return false
	}
	if mode.IsDir() && !filter.WantsDirs() {
		return false
	}
	if !mode.IsDir() && !filter.WantsFiles() {
		return false
	}

	if filter.Flags&(core.FilterReadable|core.FilterWritable|core.FilterExecutable) != 0 {
		ok := filter.Has(core.FilterReadable) && access(full, accessRead) ||
			filter.Has(core.FilterWritable) && access(full, accessWrite) ||
			filter.Has(core.FilterExecutable) && access(full, accessExecute)
		if !ok {
			return false
		}
	}

	return matchName(filter, name)
}

func matchName(filter core.Filter, name string) bool {
	if len(filter.NameFilters) == 0 {
		return true
	}
	if !filter.Has(core.FilterCaseSensitive) {
		name = strings.ToLower(name)
	}
	for _, pattern := range filter.NameFilters {
		if !filter.Has(core.FilterCaseSensitive) {
			pattern = strings.ToLower(pattern)
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
