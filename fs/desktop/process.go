package desktop

import (
	"context"
	osexec "os/exec"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/exec"
	"github.com/jmgilman/devaccess/fs/core"
)

// SearchInPath looks up an executable in the PATH of the current process.
func (d *Desktop) SearchInPath(_ context.Context, p core.Path, name string) (core.Path, error) {
	full, err := osexec.LookPath(name)
	if err != nil {
		return core.Path{}, perrors.Wrapf(err, perrors.CodeNotFound, "%s not found in PATH", name)
	}
	return p.WithPath(full), nil
}

// StartProcess runs cmd locally. Command lines containing raw shell
// fragments are run through sh.
func (d *Desktop) StartProcess(ctx context.Context, _ core.Path, cmd exec.CommandLine) (*exec.Process, error) {
	args := cmd.Argv()
	if cmd.HasRaw() {
		args = []string{"sh", "-c", cmd.String()}
	}
	d.logger.Debug("starting local process", "command", cmd.String())
	return d.executor.Clone().WithContext(ctx).Start(args...)
}
