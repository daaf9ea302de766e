package shell

import (
	"context"
	"errors"
	"io"
	osexec "os/exec"
	"testing"
	"time"

	"github.com/jmgilman/devaccess/exec"
	"github.com/jmgilman/devaccess/exec/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newExecutorMock returns a mock whose fluent methods return itself.
func newExecutorMock(run func(args ...string) (*exec.Result, error)) *mocks.ExecutorMock {
	m := &mocks.ExecutorMock{RunFunc: run}
	m.CloneFunc = func() exec.Executor { return m }
	m.WithContextFunc = func(context.Context) exec.Executor { return m }
	m.WithTimeoutFunc = func(time.Duration) exec.Executor { return m }
	m.WithStdinFunc = func(io.Reader) exec.Executor { return m }
	return m
}

func TestExecRunnerPassesCommandLine(t *testing.T) {
	m := newExecutorMock(func(args ...string) (*exec.Result, error) {
		return &exec.Result{Stdout: []byte("ok\n")}, nil
	})
	w := exec.NewWrapper(m, "ssh", "-o", "BatchMode=yes", "build-box", "--")
	r := NewExecRunner(w, WithRunTimeout(5*time.Second))

	res := r.RunInShell(context.Background(), exec.NewCommandLine("ls", "-1", "/my dir"), []byte("in"))

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "ok\n", string(res.Stdout))

	require.Len(t, m.RunCalls(), 1)
	assert.Equal(t, []string{"ssh", "-o", "BatchMode=yes", "build-box", "--", "ls -1 '/my dir'"}, m.RunCalls()[0].Args)

	require.Len(t, m.WithTimeoutCalls(), 1)
	assert.Equal(t, 5*time.Second, m.WithTimeoutCalls()[0].Timeout)

	require.Len(t, m.WithStdinCalls(), 1)
	data, err := io.ReadAll(m.WithStdinCalls()[0].R)
	require.NoError(t, err)
	assert.Equal(t, "in", string(data))
}

func TestExecRunnerReportsFailures(t *testing.T) {
	t.Run("exit code", func(t *testing.T) {
		m := newExecutorMock(func(args ...string) (*exec.Result, error) {
			res := &exec.Result{ExitCode: 2, Stderr: []byte("boom")}
			return res, &exec.ExecError{Command: args, ExitCode: 2, Err: errors.New("exit status 2")}
		})
		res := NewExecRunner(m).RunInShell(context.Background(), exec.NewCommandLine("false"), nil)
		assert.Equal(t, 2, res.ExitCode)
		assert.Equal(t, "boom", string(res.Stderr))
		assert.Empty(t, m.WithStdinCalls())
	})

	t.Run("not started", func(t *testing.T) {
		m := newExecutorMock(func(args ...string) (*exec.Result, error) {
			return nil, &exec.ExecError{Command: args, ExitCode: -1, Err: osexec.ErrNotFound}
		})
		res := NewExecRunner(m).RunInShell(context.Background(), exec.NewCommandLine("true"), nil)
		assert.Equal(t, -1, res.ExitCode)
		assert.Contains(t, string(res.Stderr), "executable file not found")
	})
}

func TestLocalRunner(t *testing.T) {
	if _, err := osexec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := NewLocalRunner()
	ctx := context.Background()

	res := r.RunInShell(ctx, exec.NewCommandLine("echo", "a b", "$HOME"), nil)
	require.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "a b $HOME\n", string(res.Stdout))

	res = r.RunInShell(ctx, exec.NewCommandLine("cat"), []byte("piped"))
	require.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "piped", string(res.Stdout))

	res = r.RunInShell(ctx, exec.NewCommandLine("sh").AddRaw(`-c 'echo oops >&2; exit 3'`), nil)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "oops\n", string(res.Stderr))

	proc, err := r.StartInShell(ctx, exec.NewCommandLine("cat"))
	require.NoError(t, err)
	_, err = proc.Stdin().Write([]byte("streamed"))
	require.NoError(t, err)
	require.NoError(t, proc.CloseStdin())
	out, err := io.ReadAll(proc.Stdout())
	require.NoError(t, err)
	assert.Equal(t, "streamed", string(out))
	_, err = proc.Wait()
	require.NoError(t, err)
}
