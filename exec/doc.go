// Package exec provides a testable interface for executing local commands.
//
// The package wraps os/exec behind the Executor interface. Production code
// uses the concrete Command and CommandWrapper types while functions accept
// Executor, so command execution can be replaced with a mock in tests.
//
// # Basic Usage
//
//	e := exec.New()
//	result, err := e.Run("uname", "-s")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(string(result.Stdout)) // "Linux\n"
//
// # Configuration
//
// Global configuration is set at creation time; local configuration applies
// to the next execution only and always wins:
//
//	e := exec.New(
//		exec.WithInheritEnv(),
//		exec.WithTimeout(30*time.Second),
//	)
//
//	result, err := e.
//		WithDir("/tmp").
//		WithStdin(bytes.NewReader(data)).
//		Run("dd", "of=out.bin")
//
// Since local settings are reset after each execution, concurrent callers
// should Clone the executor first:
//
//	result, err := e.Clone().WithContext(ctx).Run("ls", "-1")
//
// # Command Wrappers
//
// A wrapper prepends a fixed prefix to every execution. Remote devices are
// reached this way:
//
//	ssh := exec.NewWrapper(exec.New(), "ssh", "build-host", "--")
//	result, err := ssh.Run("sh", "-c", "test -d /opt")
//
// # Streaming
//
// Start launches a command and exposes its standard streams. Standard input
// must be closed explicitly so the reader on the other side sees end of
// stream:
//
//	p, err := e.Start("tar", "xf", "-", "-C", dst)
//	if err != nil {
//		return err
//	}
//	_, err = io.Copy(p.Stdin(), archive)
//	_ = p.CloseStdin()
//	result, err := p.Wait()
//
// # Shell Command Lines
//
// CommandLine builds a string for sh -c with each argument quoted:
//
//	line := exec.NewCommandLine("test", "-d", "/my dir")
//	line.String() // "test -d '/my dir'"
//
// # Error Handling
//
// Command failures return an *ExecError that includes the exit code, the
// command and its captured output. The Result is returned alongside the
// error whenever the command ran.
package exec
