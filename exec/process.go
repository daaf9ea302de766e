package exec

import (
	"bytes"
	"context"
	"io"
	osexec "os/exec"
	"sync"
)

// Process is a running command started with Executor.Start.
//
// The caller writes to Stdin, reads Stdout until EOF and then calls Wait.
// Closing standard input is explicit, through CloseStdin, so a peer reading
// the stream observes end of input exactly when the writer is done.
type Process struct {
	args   []string
	cmd    *osexec.Cmd
	cancel context.CancelFunc

	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr *syncBuffer

	closeOnce sync.Once
	closeErr  error
	waitOnce  sync.Once
	result    *Result
	waitErr   error
}

func startProcess(cmd *osexec.Cmd, args []string, cancel context.CancelFunc) (*Process, error) {
	p := &Process{
		args:   args,
		cmd:    cmd,
		cancel: cancel,
		stderr: &syncBuffer{},
	}

	fail := func(err error) (*Process, error) {
		cancel()
		return nil, &ExecError{Command: args, ExitCode: -1, Err: err}
	}

	var err error
	if p.stdin, err = cmd.StdinPipe(); err != nil {
		return fail(err)
	}
	if p.stdout, err = cmd.StdoutPipe(); err != nil {
		return fail(err)
	}
	cmd.Stderr = p.stderr

	if err := cmd.Start(); err != nil {
		return fail(err)
	}
	return p, nil
}

// Stdin returns the writer connected to the process's standard input.
func (p *Process) Stdin() io.Writer {
	return p.stdin
}

// Stdout returns the reader connected to the process's standard output.
func (p *Process) Stdout() io.Reader {
	return p.stdout
}

// Stderr returns the standard error captured so far.
func (p *Process) Stderr() string {
	return p.stderr.String()
}

// CloseStdin closes the process's standard input. It is safe to call more
// than once.
func (p *Process) CloseStdin() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.stdin.Close()
	})
	return p.closeErr
}

// Kill terminates the process. Wait must still be called to release its
// resources.
func (p *Process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

// Wait closes standard input, discards any unread standard output and waits
// for the process to exit. Subsequent calls return the same outcome.
func (p *Process) Wait() (*Result, error) {
	p.waitOnce.Do(func() {
		_ = p.CloseStdin()
		_, _ = io.Copy(io.Discard, p.stdout)

		err := p.cmd.Wait()
		p.cancel()

		p.result = &Result{
			Stderr:   p.stderr.Bytes(),
			ExitCode: exitCode(p.cmd),
		}
		if err != nil {
			p.waitErr = &ExecError{
				Command:  p.args,
				ExitCode: p.result.ExitCode,
				Stderr:   p.stderr.String(),
				Err:      err,
			}
		}
	})
	return p.result, p.waitErr
}

// syncBuffer is a bytes.Buffer safe for a concurrent writer and reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
