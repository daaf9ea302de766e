package shell

import (
	"context"
	"strings"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/exec"
	"github.com/jmgilman/devaccess/fs/core"
)

// SearchInPath resolves name with the shell's "command -v".
func (s *Shell) SearchInPath(ctx context.Context, p core.Path, name string) (core.Path, error) {
	res := s.run(ctx, exec.NewCommandLine("command", "-v", name), nil)
	found := strings.TrimSpace(string(res.Stdout))
	if res.ExitCode != 0 || !strings.HasPrefix(found, "/") {
		return core.Path{}, perrors.Newf(perrors.CodeNotFound, "Executable %q not found on %s", name, p.WithPath("/"))
	}
	return p.WithPath(found), nil
}

// StartProcess launches cmd in a shell on the device. The runner must be
// able to stream.
func (s *Shell) StartProcess(ctx context.Context, p core.Path, cmd exec.CommandLine) (*exec.Process, error) {
	starter, ok := s.runner.(Starter)
	if !ok {
		return nil, core.NotImplemented("startProcess", p)
	}
	s.logger.Debug("starting shell process", "cmd", cmd.String())
	proc, err := starter.StartInShell(ctx, cmd)
	if err != nil {
		var execErr *exec.ExecError
		if perrors.As(err, &execErr) {
			return nil, execErr.Platform()
		}
		return nil, perrors.Wrapf(err, perrors.CodeExecutionFailed, "Failed to start %q", cmd.Executable())
	}
	return proc, nil
}
