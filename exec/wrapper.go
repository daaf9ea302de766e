package exec

import (
	"context"
	"io"
	"time"
)

// CommandWrapper wraps an Executor to provide a command-specific interface.
// It prepends a fixed argument prefix to every Run and Start, which is how
// the remote runners address a device: "ssh host --" or
// "docker exec -i container".
// CommandWrapper implements the Executor interface.
type CommandWrapper struct {
	executor Executor
	prefix   []string
}

// NewWrapper creates a new CommandWrapper that prepends cmd (and any extra
// prefix arguments) to all executions.
func NewWrapper(executor Executor, cmd string, prefix ...string) *CommandWrapper {
	return &CommandWrapper{
		executor: executor,
		prefix:   append([]string{cmd}, prefix...),
	}
}

// Prefix returns the argument prefix prepended to every execution.
func (w *CommandWrapper) Prefix() []string {
	return append([]string(nil), w.prefix...)
}

// WithEnv sets environment variables for the command.
func (w *CommandWrapper) WithEnv(env map[string]string) Executor {
	w.executor = w.executor.WithEnv(env)
	return w
}

// WithDir sets the working directory for the command.
func (w *CommandWrapper) WithDir(dir string) Executor {
	w.executor = w.executor.WithDir(dir)
	return w
}

// WithContext sets the context for the command.
func (w *CommandWrapper) WithContext(ctx context.Context) Executor {
	w.executor = w.executor.WithContext(ctx)
	return w
}

// WithTimeout sets a timeout for the command.
func (w *CommandWrapper) WithTimeout(timeout time.Duration) Executor {
	w.executor = w.executor.WithTimeout(timeout)
	return w
}

// WithInheritEnv enables environment inheritance.
func (w *CommandWrapper) WithInheritEnv() Executor {
	w.executor = w.executor.WithInheritEnv()
	return w
}

// WithStdin sets the standard input for the next execution.
func (w *CommandWrapper) WithStdin(r io.Reader) Executor {
	w.executor = w.executor.WithStdin(r)
	return w
}

// Run executes the wrapped command with the given arguments.
func (w *CommandWrapper) Run(args ...string) (*Result, error) {
	return w.executor.Run(w.full(args)...)
}

// Start launches the wrapped command with the given arguments.
func (w *CommandWrapper) Start(args ...string) (*Process, error) {
	return w.executor.Start(w.full(args)...)
}

// Clone creates a copy of the wrapper with the same configuration.
func (w *CommandWrapper) Clone() Executor {
	return &CommandWrapper{
		executor: w.executor.Clone(),
		prefix:   w.Prefix(),
	}
}

func (w *CommandWrapper) full(args []string) []string {
	out := make([]string, 0, len(w.prefix)+len(args))
	out = append(out, w.prefix...)
	return append(out, args...)
}
