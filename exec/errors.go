package exec

import (
	"context"
	stderrors "errors"
	"fmt"
	osexec "os/exec"
	"strings"

	perrors "github.com/jmgilman/devaccess/errors"
)

// ExecError is returned when a command cannot be started or exits non-zero.
type ExecError struct {
	Command []string
	// ExitCode is -1 when the process never ran or was killed.
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	line := strings.Join(e.Command, " ")
	if e.Err == nil {
		return fmt.Sprintf("command %q exited with code %d", line, e.ExitCode)
	}
	return fmt.Sprintf("command %q exited with code %d: %v", line, e.ExitCode, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Started reports whether the process ran and produced an exit status.
func (e *ExecError) Started() bool {
	return e.ExitCode >= 0
}

// Platform converts the failure into a PlatformError. A missing program is
// CodeNotFound, an expired deadline CodeTimeout and anything else is
// classified from stderr.
func (e *ExecError) Platform() perrors.PlatformError {
	var name string
	if len(e.Command) > 0 {
		name = e.Command[0]
	}

	var err perrors.PlatformError
	switch {
	case stderrors.Is(e.Err, osexec.ErrNotFound):
		err = perrors.Wrapf(e, perrors.CodeNotFound, "Program %q not found", name)
	case stderrors.Is(e.Err, context.DeadlineExceeded):
		err = perrors.Wrapf(e, perrors.CodeTimeout, "Program %q timed out", name)
	default:
		err = perrors.FromStderr(e.Stderr, "Program %q failed", name)
	}
	return perrors.WithCommand(err, strings.Join(e.Command, " "), e.ExitCode)
}
