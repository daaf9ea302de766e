package shell

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/exec"
	"github.com/jmgilman/devaccess/fs/core"
	"github.com/jmgilman/devaccess/fs/tarpipe"
)

// RemoveDepths are the minimum number of slashes a cleaned path must contain
// before RemoveRecursively will run rm -rf on it.
type RemoveDepths struct {
	// Home applies below /home/.
	Home int
	// Tmp applies below /tmp/.
	Tmp int
	// Default applies everywhere else.
	Default int
}

// DefaultRemoveDepths allows /tmp/x, /home/user/a/b and /opt/a/b.
var DefaultRemoveDepths = RemoveDepths{Home: 4, Tmp: 2, Default: 3}

// Shell serves the paths of one Unix device by running standard utilities
// through a Runner.
type Shell struct {
	core.Unsupported

	runner   Runner
	logger   *slog.Logger
	depths   RemoveDepths
	maxTries int
	noTar    bool
	copier   *tarpipe.Copier

	find   capability
	mktemp capability

	osMu   sync.Mutex
	osType core.OSType
}

var (
	_ core.Access         = (*Shell)(nil)
	_ core.ProcessStarter = (*Shell)(nil)
)

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) {
		s.logger = l
	}
}

// WithRemoveDepths overrides DefaultRemoveDepths.
func WithRemoveDepths(d RemoveDepths) Option {
	return func(s *Shell) {
		s.depths = d
	}
}

// WithTempTries bounds the candidates CreateTempFile tries when mktemp is
// not available.
func WithTempTries(n int) Option {
	return func(s *Shell) {
		s.maxTries = n
	}
}

// WithoutFind makes directory iteration use ls from the start.
func WithoutFind() Option {
	return func(s *Shell) {
		s.find.record(false)
	}
}

// WithoutTar makes CopyRecursively copy file by file.
func WithoutTar() Option {
	return func(s *Shell) {
		s.noTar = true
	}
}

// WithOSType skips asking uname.
func WithOSType(t core.OSType) Option {
	return func(s *Shell) {
		s.osType = t
	}
}

// New creates a Shell backend on top of runner.
func New(runner Runner, opts ...Option) *Shell {
	s := &Shell{
		runner:   runner,
		logger:   slog.New(slog.DiscardHandler),
		depths:   DefaultRemoveDepths,
		maxTries: 10,
	}
	for _, opt := range opts {
		opt(s)
	}

	copierOpts := []tarpipe.Option{tarpipe.WithLogger(s.logger)}
	if s.noTar {
		copierOpts = append(copierOpts, tarpipe.WithoutTar())
	}
	s.copier = tarpipe.New(core.Single(s), copierOpts...)
	return s
}

// run performs one round trip.
func (s *Shell) run(ctx context.Context, cmd exec.CommandLine, stdin []byte) RunResult {
	res := s.runner.RunInShell(ctx, cmd, stdin)
	s.logger.Debug("shell round trip", "cmd", cmd.String(), "exit_code", res.ExitCode)
	return res
}

func (s *Shell) succeeds(ctx context.Context, cmd exec.CommandLine) bool {
	return s.run(ctx, cmd, nil).ExitCode == 0
}

// check runs cmd and turns a non-zero exit into an error whose message is
// the formatted text followed by the command's stderr.
func (s *Shell) check(ctx context.Context, cmd exec.CommandLine, stdin []byte, format string, args ...interface{}) (RunResult, error) {
	res := s.run(ctx, cmd, stdin)
	if res.ExitCode == 0 {
		return res, nil
	}
	err := perrors.FromStderr(string(res.Stderr), format, args...)
	return res, perrors.WithCommand(err, cmd.String(), res.ExitCode)
}

// test evaluates "test -f1 p -a -f2 p ...".
func (s *Shell) test(ctx context.Context, p core.Path, flags ...string) bool {
	if p.Path == "" {
		return false
	}
	cmd := exec.NewCommandLine("test")
	for i, f := range flags {
		if i > 0 {
			cmd = cmd.AddArg("-a")
		}
		cmd = cmd.AddArgs(f, p.Path)
	}
	return s.succeeds(ctx, cmd)
}

// Exists runs "test -e".
func (s *Shell) Exists(ctx context.Context, p core.Path) bool {
	return s.test(ctx, p, "-e")
}

// IsFile runs "test -f".
func (s *Shell) IsFile(ctx context.Context, p core.Path) bool {
	return s.test(ctx, p, "-f")
}

// IsDirectory runs "test -d".
func (s *Shell) IsDirectory(ctx context.Context, p core.Path) bool {
	return s.test(ctx, p, "-d")
}

// IsSymlink runs "test -h".
func (s *Shell) IsSymlink(ctx context.Context, p core.Path) bool {
	return s.test(ctx, p, "-h")
}

// IsExecutableFile reports whether p is a file the remote user may execute.
func (s *Shell) IsExecutableFile(ctx context.Context, p core.Path) bool {
	return s.test(ctx, p, "-x", "-f")
}

// IsReadableFile reports whether p is a file the remote user may read.
func (s *Shell) IsReadableFile(ctx context.Context, p core.Path) bool {
	return s.test(ctx, p, "-r", "-f")
}

// IsWritableFile reports whether p is a file the remote user may write.
func (s *Shell) IsWritableFile(ctx context.Context, p core.Path) bool {
	return s.test(ctx, p, "-w", "-f")
}

// IsReadableDirectory reports whether p is a directory the remote user may
// list.
func (s *Shell) IsReadableDirectory(ctx context.Context, p core.Path) bool {
	return s.test(ctx, p, "-r", "-d")
}

// IsWritableDirectory reports whether p is a directory the remote user may
// create entries in.
func (s *Shell) IsWritableDirectory(ctx context.Context, p core.Path) bool {
	return s.test(ctx, p, "-w", "-d")
}

// EnsureWritableDirectory creates p unless it already is a writable
// directory.
func (s *Shell) EnsureWritableDirectory(ctx context.Context, p core.Path) error {
	return core.EnsureWritableDirectory(ctx, s, p)
}

// EnsureExistingFile touches p. An existing file keeps its content.
func (s *Shell) EnsureExistingFile(ctx context.Context, p core.Path) error {
	_, err := s.check(ctx, exec.NewCommandLine("touch", p.Path), nil, "Could not create file %q", p.Path)
	return err
}

// CreateDirectory runs "mkdir -p".
func (s *Shell) CreateDirectory(ctx context.Context, p core.Path) error {
	_, err := s.check(ctx, exec.NewCommandLine("mkdir", "-p", p.Path), nil, "Could not create directory %q", p.Path)
	return err
}

// RemoveFile removes a single file. The error carries rm's stderr.
func (s *Shell) RemoveFile(ctx context.Context, p core.Path) error {
	_, err := s.check(ctx, exec.NewCommandLine("rm", p.Path), nil, "Failed to remove file %q", p.Path)
	return err
}

// RenameFile runs mv. Both paths must be on this device.
func (s *Shell) RenameFile(ctx context.Context, src, dst core.Path) error {
	if !src.SameDevice(dst) {
		return core.OtherDevice("rename", src, dst)
	}
	_, err := s.check(ctx, exec.NewCommandLine("mv", src.Path, dst.Path), nil,
		"Failed to rename %q to %q", src.Path, dst.Path)
	return err
}

// CopyFile copies within the device with cp. Copies between devices go
// through core.CopyFile.
func (s *Shell) CopyFile(ctx context.Context, src, dst core.Path) error {
	if !src.SameDevice(dst) {
		return core.OtherDevice("copy", src, dst)
	}
	_, err := s.check(ctx, exec.NewCommandLine("cp", src.Path, dst.Path), nil,
		"Failed to copy file %q to %q", src.Path, dst.Path)
	return err
}

// CopyRecursively streams a tar archive between two processes on the
// device when tar is available and copies file by file otherwise.
func (s *Shell) CopyRecursively(ctx context.Context, src, dst core.Path) error {
	if !src.SameDevice(dst) {
		return core.OtherDevice("copy", src, dst)
	}
	return s.copier.CopyRecursively(ctx, src, dst)
}

// SymlinkTarget resolves the link at p completely with "readlink -e".
func (s *Shell) SymlinkTarget(ctx context.Context, p core.Path) (core.Path, error) {
	res, err := s.check(ctx, exec.NewCommandLine("readlink", "-n", "-e", p.Path), nil,
		"Cannot resolve symbolic link %q", p.Path)
	if err != nil {
		return core.Path{}, err
	}
	if len(res.Stdout) == 0 {
		return core.Path{}, perrors.Newf(perrors.CodeNotFound, "Cannot resolve symbolic link %q", p.Path)
	}
	return p.WithPath(string(res.Stdout)), nil
}

// SetPermissions runs chmod with the octal form of perms.
func (s *Shell) SetPermissions(ctx context.Context, p core.Path, perms core.Permissions) error {
	_, err := s.check(ctx, exec.NewCommandLine("chmod", perms.ChmodArg(), p.Path), nil,
		"Cannot set permissions of %q", p.Path)
	return err
}

// BytesAvailable parses the "Available" column of df -k.
func (s *Shell) BytesAvailable(ctx context.Context, p core.Path) int64 {
	res := s.run(ctx, exec.NewCommandLine("df", "-k", p.Path), nil)
	if res.ExitCode != 0 {
		return -1
	}
	return bytesAvailableFromDF(string(res.Stdout))
}

// bytesAvailableFromDF reads df -k output. A long device name may push the
// numbers onto a second line, so the fields after the header are joined.
func bytesAvailableFromDF(out string) int64 {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		return -1
	}
	fields := strings.Fields(strings.Join(lines[1:], " "))
	if len(fields) < 4 {
		return -1
	}
	kib, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return -1
	}
	return kib * 1024
}

// OSType asks uname once and remembers the answer. A failed query is not
// remembered and reports Linux.
func (s *Shell) OSType(ctx context.Context, _ core.Path) core.OSType {
	s.osMu.Lock()
	defer s.osMu.Unlock()

	if s.osType != core.OSUnknown {
		return s.osType
	}
	res := s.run(ctx, exec.NewCommandLine("uname", "-s"), nil)
	if res.ExitCode != 0 {
		return core.OSLinux
	}
	switch strings.TrimSpace(string(res.Stdout)) {
	case "Darwin":
		s.osType = core.OSMac
	case "Linux":
		s.osType = core.OSLinux
	default:
		s.osType = core.OSOtherUnix
	}
	return s.osType
}

// Environment parses the output of env on the device.
func (s *Shell) Environment(ctx context.Context, p core.Path) (map[string]string, error) {
	res, err := s.check(ctx, exec.NewCommandLine("env"), nil, "Cannot read environment of %s", p.WithPath("/"))
	if err != nil {
		return nil, err
	}
	env := make(map[string]string)
	for _, line := range strings.Split(string(res.Stdout), "\n") {
		if k, v, ok := strings.Cut(line, "="); ok && k != "" {
			env[k] = v
		}
	}
	return env, nil
}
