package shell

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/exec"
	"github.com/jmgilman/devaccess/fs/core"
)

// statDialect holds the stat(1) format strings of one utility family.
type statDialect struct {
	flag         string
	permissions  string
	size         string
	fileID       string
	lastModified string
	// entry prints the raw mode, the modification time and the size.
	entry    string
	modeBase int
}

var (
	gnuStat = statDialect{
		flag:         "-c",
		permissions:  "%a",
		size:         "%s",
		fileID:       "%D:%i",
		lastModified: "%Y",
		entry:        "%f %Y %s",
		modeBase:     16,
	}
	bsdStat = statDialect{
		flag:         "-f",
		permissions:  "%p",
		size:         "%z",
		fileID:       "%d:%i",
		lastModified: "%m",
		entry:        "%p %m %z",
		modeBase:     8,
	}
)

func (s *Shell) dialect(ctx context.Context, p core.Path) statDialect {
	if s.OSType(ctx, p) == core.OSMac {
		return bsdStat
	}
	return gnuStat
}

func (d statDialect) command(format, name string) exec.CommandLine {
	return exec.NewCommandLine("stat", d.flag, format, "-L", name)
}

// findSuffix makes find print `"<path>" <mode> <mtime> <size>` per entry.
// One shell prints the whole line so that every entry ends in a newline
// even when stat fails. A dangling symbolic link cannot be followed and is
// reported through lstat.
func (d statDialect) findSuffix() string {
	format := `"` + d.entry + `"`
	script := fmt.Sprintf(`printf "\"%%s\" " "$1"; stat -L %[1]s %[2]s "$1" 2>/dev/null || stat %[1]s %[2]s "$1" 2>/dev/null || echo`,
		d.flag, format)
	return "-exec sh -c " + exec.Quote(script) + ` sh {} \;`
}

// parseEntry decodes the output of the entry format.
func (d statDialect) parseEntry(s string) (core.StatInfo, bool) {
	f := strings.Fields(s)
	if len(f) != 3 {
		return core.StatInfo{}, false
	}
	mode, err := strconv.ParseUint(f[0], d.modeBase, 32)
	if err != nil {
		return core.StatInfo{}, false
	}
	secs, err := strconv.ParseInt(f[1], 10, 64)
	if err != nil {
		return core.StatInfo{}, false
	}
	size, err := strconv.ParseInt(f[2], 10, 64)
	if err != nil {
		return core.StatInfo{}, false
	}
	return statInfoFromMode(uint32(mode), secs, size), true
}

const (
	modeTypeMask = 0o170000
	modeDir      = 0o040000
	modeRegular  = 0o100000
	modeSymlink  = 0o120000
)

func statInfoFromMode(mode uint32, secs, size int64) core.StatInfo {
	flags := core.FlagExists
	switch mode & modeTypeMask {
	case modeDir:
		flags |= core.FlagDirectory
	case modeRegular:
		flags |= core.FlagFile
	case modeSymlink:
		flags |= core.FlagSymlink
	}
	return core.StatInfo{
		Size:         size,
		LastModified: time.Unix(secs, 0).UTC(),
		Flags:        flags.WithPermissions(core.PermissionsFromMode(mode)),
	}
}

// nameFlags derives the flags that depend only on the path.
func nameFlags(name string) core.FileFlags {
	clean := path.Clean(name)
	if clean == "/" {
		return core.FlagRoot
	}
	if strings.HasPrefix(path.Base(clean), ".") {
		return core.FlagHidden
	}
	return 0
}

// rootInfo is reported for "/" without asking the device.
func rootInfo() core.StatInfo {
	perms := core.ReadOwner | core.WriteOwner | core.ExeOwner |
		core.ReadGroup | core.ExeGroup | core.ReadOther | core.ExeOther
	flags := core.FlagDirectory | core.FlagLocalDisk | core.FlagExists
	return core.StatInfo{
		Size:         4096,
		LastModified: time.Now(),
		Flags:        flags.WithPermissions(perms),
	}
}

// Stat reports p with one stat round trip. "/" is answered locally.
func (s *Shell) Stat(ctx context.Context, p core.Path) core.StatInfo {
	if p.Path == "/" {
		return rootInfo()
	}
	d := s.dialect(ctx, p)
	res := s.run(ctx, d.command(d.entry, p.Path), nil)
	if res.ExitCode != 0 {
		return core.StatInfo{Size: -1}
	}
	info, ok := d.parseEntry(string(res.Stdout))
	if !ok {
		return core.StatInfo{Size: -1}
	}
	info.Flags |= nameFlags(p.Path)
	return info
}

// Permissions returns the mode bits of p, following symbolic links.
func (s *Shell) Permissions(ctx context.Context, p core.Path) (core.Permissions, error) {
	d := s.dialect(ctx, p)
	res, err := s.check(ctx, d.command(d.permissions, p.Path), nil, "Cannot read permissions of %q", p.Path)
	if err != nil {
		return 0, err
	}
	perms, err := core.ParsePermissions(strings.TrimSpace(string(res.Stdout)))
	if err != nil {
		return 0, perrors.Wrapf(err, perrors.CodeParseFailed, "Cannot parse permissions of %q", p.Path)
	}
	return perms, nil
}

// FileSize returns the size of p in bytes, or -1.
func (s *Shell) FileSize(ctx context.Context, p core.Path) int64 {
	d := s.dialect(ctx, p)
	res := s.run(ctx, d.command(d.size, p.Path), nil)
	if res.ExitCode != 0 {
		return -1
	}
	size, err := strconv.ParseInt(strings.TrimSpace(string(res.Stdout)), 10, 64)
	if err != nil {
		return -1
	}
	return size
}

// FileID returns "device:inode" for p, or an empty string.
func (s *Shell) FileID(ctx context.Context, p core.Path) string {
	d := s.dialect(ctx, p)
	res := s.run(ctx, d.command(d.fileID, p.Path), nil)
	if res.ExitCode != 0 {
		return ""
	}
	return strings.TrimSpace(string(res.Stdout))
}

// LastModified returns the modification time of p, or the zero time.
func (s *Shell) LastModified(ctx context.Context, p core.Path) time.Time {
	d := s.dialect(ctx, p)
	res := s.run(ctx, d.command(d.lastModified, p.Path), nil)
	if res.ExitCode != 0 {
		return time.Time{}
	}
	secs, err := strconv.ParseInt(strings.TrimSpace(string(res.Stdout)), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0).UTC()
}
