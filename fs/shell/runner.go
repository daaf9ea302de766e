package shell

import (
	"bytes"
	"context"
	"time"

	"github.com/jmgilman/devaccess/exec"
)

// RunResult is the outcome of one shell round trip.
type RunResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner executes a command line in a shell on the device, optionally
// feeding it standard input. A command that cannot be started at all is
// reported with exit code -1 and the reason in Stderr.
type Runner interface {
	RunInShell(ctx context.Context, cmd exec.CommandLine, stdin []byte) RunResult
}

// Starter is implemented by runners that can launch long-running commands
// with streaming standard input and output.
type Starter interface {
	StartInShell(ctx context.Context, cmd exec.CommandLine) (*exec.Process, error)
}

// ExecRunner is a Runner built on an exec.Executor whose argument prefix
// reaches a shell on the device, such as "sh -c" or "ssh host --".
type ExecRunner struct {
	executor exec.Executor
	timeout  time.Duration
}

var (
	_ Runner  = (*ExecRunner)(nil)
	_ Starter = (*ExecRunner)(nil)
)

// RunnerOption configures an ExecRunner.
type RunnerOption func(*ExecRunner)

// WithRunTimeout bounds every round trip. Zero means no limit.
func WithRunTimeout(d time.Duration) RunnerOption {
	return func(r *ExecRunner) {
		r.timeout = d
	}
}

// NewExecRunner returns a runner that passes the rendered command line as
// the final argument to executor.
func NewExecRunner(executor exec.Executor, opts ...RunnerOption) *ExecRunner {
	r := &ExecRunner{executor: executor}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewLocalRunner runs commands with the local /bin/sh.
func NewLocalRunner(opts ...RunnerOption) *ExecRunner {
	return NewExecRunner(exec.NewWrapper(exec.New(exec.WithInheritEnv()), "sh", "-c"), opts...)
}

// NewSSHRunner runs commands on host over ssh. The remote login shell
// interprets the command line.
func NewSSHRunner(host string, sshOptions []string, opts ...RunnerOption) *ExecRunner {
	prefix := append(append([]string{}, sshOptions...), host, "--")
	return NewExecRunner(exec.NewWrapper(exec.New(exec.WithInheritEnv()), "ssh", prefix...), opts...)
}

// NewDockerRunner runs commands in a running container through docker exec.
func NewDockerRunner(container string, opts ...RunnerOption) *ExecRunner {
	w := exec.NewWrapper(exec.New(exec.WithInheritEnv()), "docker", "exec", "-i", container, "sh", "-c")
	return NewExecRunner(w, opts...)
}

// RunInShell runs cmd once and collects its output. A command that could not
// be started is reported with exit code -1 and the launch error as stderr.
func (r *ExecRunner) RunInShell(ctx context.Context, cmd exec.CommandLine, stdin []byte) RunResult {
	e := r.executor.Clone().WithContext(ctx)
	if r.timeout > 0 {
		e = e.WithTimeout(r.timeout)
	}
	if stdin != nil {
		e = e.WithStdin(bytes.NewReader(stdin))
	}

	res, err := e.Run(cmd.String())
	if res == nil {
		res = &exec.Result{ExitCode: -1}
	}
	out := RunResult{ExitCode: res.ExitCode, Stdout: res.Stdout, Stderr: res.Stderr}

	if err != nil && out.ExitCode == -1 && len(out.Stderr) == 0 {
		out.Stderr = []byte(err.Error())
	}
	return out
}

// StartInShell starts cmd and returns while it runs. The run timeout does
// not apply.
func (r *ExecRunner) StartInShell(ctx context.Context, cmd exec.CommandLine) (*exec.Process, error) {
	return r.executor.Clone().WithContext(ctx).Start(cmd.String())
}
