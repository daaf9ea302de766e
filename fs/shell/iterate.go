package shell

import (
	"context"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/exec"
	"github.com/jmgilman/devaccess/fs/core"
)

// IterateDirectory lists entries with find. The first time find proves
// unusable on the device the backend switches to ls for good.
func (s *Shell) IterateDirectory(ctx context.Context, p core.Path, filter core.Filter, cb core.Callback) error {
	if s.find.usable() {
		if s.iterateWithFind(ctx, p, filter, cb) {
			s.find.record(true)
			return nil
		}
		if s.find.record(false) {
			s.logger.Info("find is not usable, falling back to ls", "device", p.WithPath("/").String())
		}
	}
	return s.iterateWithLs(ctx, p, filter, cb)
}

// findCommand translates filter into find arguments. With a stat dialect
// every entry is followed by its mode, mtime and size.
func findCommand(root string, filter core.Filter, d *statDialect) exec.CommandLine {
	cmd := exec.NewCommandLine("find")
	if filter.FollowSymlinks {
		cmd = cmd.AddArg("-L")
	} else {
		cmd = cmd.AddArg("-H")
	}
	cmd = cmd.AddArg(root)

	if !filter.Recursive {
		cmd = cmd.AddArgs("-maxdepth", "1")
	}
	if !filter.Has(core.FilterHidden) {
		cmd = cmd.AddArgs("!", "-name", ".*")
	}

	var kinds []string
	if filter.WantsDirs() {
		kinds = append(kinds, "-type", "d")
	}
	if filter.WantsFiles() {
		kinds = append(kinds, "-type", "f")
	}
	if !filter.Has(core.FilterNoSymlinks) {
		kinds = append(kinds, "-type", "l")
	}
	cmd = addGroup(cmd, kinds, 2)

	var access []string
	if filter.Has(core.FilterReadable) {
		access = append(access, "-readable")
	}
	if filter.Has(core.FilterWritable) {
		access = append(access, "-writable")
	}
	if filter.Has(core.FilterExecutable) {
		access = append(access, "-executable")
	}
	cmd = addGroup(cmd, access, 1)

	nameTest := "-iname"
	if filter.Has(core.FilterCaseSensitive) {
		nameTest = "-name"
	}
	var names []string
	for _, pattern := range filter.NameFilters {
		names = append(names, nameTest, pattern)
	}
	cmd = addGroup(cmd, names, 2)

	if d != nil {
		cmd = cmd.AddRaw(d.findSuffix())
	}
	return cmd
}

// addGroup appends "( t1 -o t2 ... )" where every test spans width words.
func addGroup(cmd exec.CommandLine, words []string, width int) exec.CommandLine {
	if len(words) == 0 {
		return cmd
	}
	cmd = cmd.AddArg("(")
	for i := 0; i < len(words); i += width {
		if i > 0 {
			cmd = cmd.AddArg("-o")
		}
		cmd = cmd.AddArgs(words[i : i+width]...)
	}
	return cmd.AddArg(")")
}

// iterateWithFind reports false when find could not be used and the
// caller must fall back.
func (s *Shell) iterateWithFind(ctx context.Context, p core.Path, filter core.Filter, cb core.Callback) bool {
	root := path.Clean(p.Path)

	var d *statDialect
	if cb.WantsInfo() {
		dialect := s.dialect(ctx, p)
		d = &dialect
	}

	res := s.run(ctx, findCommand(root, filter, d), nil)
	out := string(res.Stdout)

	// find exits non-zero when it meets an unreadable subdirectory, so
	// output that starts with the search path still counts.
	prefix := root
	if d != nil {
		prefix = `"` + root
	}
	if res.ExitCode != 0 && !strings.HasPrefix(out, prefix) {
		// A missing directory has nothing to list; anything else means
		// find itself does not work here.
		return !s.Exists(ctx, p)
	}

	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}

		name := line
		var info core.StatInfo
		if d != nil {
			q := strings.LastIndex(line, `"`)
			if !strings.HasPrefix(line, `"`) || q <= 0 {
				continue
			}
			var ok bool
			if info, ok = d.parseEntry(line[q+1:]); !ok {
				continue
			}
			name = line[1:q]
			info.Flags |= nameFlags(name)
			if info.IsSymlink() {
				// Only a dangling link reports its own mode.
				info.Flags &^= core.FlagExists
			}
		}

		if name == root {
			continue
		}
		if cb.Call(p.WithPath(name), info) == core.Stop {
			break
		}
	}
	return true
}

// iterateWithLs walks the tree with one "ls -1 -p" per directory. ls
// cannot tell links or access rights apart, so filters on those are
// rejected.
func (s *Shell) iterateWithLs(ctx context.Context, p core.Path, filter core.Filter, cb core.Callback) error {
	const unsupported = core.FilterNoSymlinks | core.FilterReadable | core.FilterWritable | core.FilterExecutable
	if filter.Flags&unsupported != 0 {
		return perrors.Wrapf(core.ErrUnsupported, perrors.CodeNotImplemented,
			"Filtering by link type or access is not supported without find on %s", p.WithPath("/"))
	}

	_, err := s.listWithLs(ctx, p, path.Clean(p.Path), filter, cb, true)
	return err
}

// listWithLs lists dir and, for recursive filters, its subdirectories. It
// reports whether the callback asked to stop. Only the top directory's
// failure is an error.
func (s *Shell) listWithLs(ctx context.Context, p core.Path, dir string, filter core.Filter, cb core.Callback, top bool) (bool, error) {
	cmd := exec.NewCommandLine("ls", "-1", "-p")
	if filter.Has(core.FilterHidden) {
		cmd = cmd.AddArg("-A")
	}
	cmd = cmd.AddArgs("--", dir)

	res := s.run(ctx, cmd, nil)
	if res.ExitCode != 0 {
		if top {
			if !s.Exists(ctx, p) {
				return false, nil
			}
			_, err := s.check(ctx, cmd, nil, "Cannot list directory %q", dir)
			return false, err
		}
		return false, nil
	}

	for _, line := range strings.Split(string(res.Stdout), "\n") {
		if line == "" {
			continue
		}
		isDir := strings.HasSuffix(line, "/")
		name := strings.TrimSuffix(line, "/")
		child := path.Join(dir, name)

		wanted := (isDir && filter.WantsDirs()) || (!isDir && filter.WantsFiles())
		if wanted && matchName(filter, name) {
			var info core.StatInfo
			if cb.WantsInfo() {
				info = s.Stat(ctx, p.WithPath(child))
			}
			if cb.Call(p.WithPath(child), info) == core.Stop {
				return true, nil
			}
		}

		if isDir && filter.Recursive {
			stop, err := s.listWithLs(ctx, p, child, filter, cb, false)
			if stop || err != nil {
				return stop, err
			}
		}
	}
	return false, nil
}

// matchName applies the name globs the way find's -name/-iname would.
func matchName(filter core.Filter, name string) bool {
	if len(filter.NameFilters) == 0 {
		return true
	}
	fold := !filter.Has(core.FilterCaseSensitive)
	if fold {
		name = strings.ToLower(name)
	}
	for _, pattern := range filter.NameFilters {
		if fold {
			pattern = strings.ToLower(pattern)
		}
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
