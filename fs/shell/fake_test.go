package shell

import (
	"context"
	"strings"
	"sync"

	"github.com/jmgilman/devaccess/exec"
)

// call is one recorded round trip.
type call struct {
	cmd   string
	stdin []byte
}

// fakeRunner answers command lines from a list of prefix rules. Unmatched
// commands fail with exit code 127.
type fakeRunner struct {
	mu    sync.Mutex
	calls []call
	rules []rule
}

type rule struct {
	prefix string
	result RunResult
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{}
}

// on registers the result for commands starting with prefix. Later rules
// take precedence.
func (f *fakeRunner) on(prefix string, exitCode int, stdout, stderr string) *fakeRunner {
	f.rules = append(f.rules, rule{
		prefix: prefix,
		result: RunResult{ExitCode: exitCode, Stdout: []byte(stdout), Stderr: []byte(stderr)},
	})
	return f
}

func (f *fakeRunner) RunInShell(_ context.Context, cmd exec.CommandLine, stdin []byte) RunResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	line := cmd.String()
	f.calls = append(f.calls, call{cmd: line, stdin: stdin})
	for i := len(f.rules) - 1; i >= 0; i-- {
		if strings.HasPrefix(line, f.rules[i].prefix) {
			return f.rules[i].result
		}
	}
	return RunResult{ExitCode: 127, Stderr: []byte("sh: " + cmd.Executable() + ": not found")}
}

// commands returns the recorded command lines.
func (f *fakeRunner) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.cmd
	}
	return out
}

// count returns how many recorded commands start with prefix.
func (f *fakeRunner) count(prefix string) int {
	n := 0
	for _, c := range f.commands() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeRunner) last() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}
