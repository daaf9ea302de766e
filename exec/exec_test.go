package exec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	perrors "github.com/jmgilman/devaccess/errors"
)

func TestNew(t *testing.T) {
	exec := New()
	if exec == nil {
		t.Fatal("New() returned nil")
	}
}

func TestBasicExecution(t *testing.T) {
	exec := New()
	result, err := exec.Run("echo", "hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(string(result.Stdout), "hello world") {
		t.Errorf("expected stdout to contain 'hello world', got: %s", result.Stdout)
	}

	if result.ExitCode != 0 {
		t.Errorf("expected exit code 0, got: %d", result.ExitCode)
	}
}

func TestCommandFailure(t *testing.T) {
	exec := New()
	result, err := exec.Run("sh", "-c", "echo oops >&2; exit 3")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got: %T", err)
	}

	if execErr.ExitCode != 3 {
		t.Errorf("expected exit code 3, got: %d", execErr.ExitCode)
	}

	if result == nil {
		t.Fatal("expected result even with error")
	}

	if strings.TrimSpace(string(result.Stderr)) != "oops" {
		t.Errorf("expected stderr 'oops', got: %q", result.Stderr)
	}
}

func TestMissingExecutable(t *testing.T) {
	exec := New()
	result, err := exec.Run("definitely-not-a-real-binary-xyz")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if result.ExitCode != -1 {
		t.Errorf("expected exit code -1, got: %d", result.ExitCode)
	}
}

func TestEmptyArgs(t *testing.T) {
	exec := New()
	if _, err := exec.Run(); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestWithDir(t *testing.T) {
	exec := New()
	result, err := exec.WithDir("/tmp").Run("pwd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(string(result.Stdout), "/tmp") {
		t.Errorf("expected stdout to contain '/tmp', got: %s", result.Stdout)
	}
}

func TestWithEnv(t *testing.T) {
	exec := New()
	result, err := exec.WithInheritEnv().WithEnv(map[string]string{
		"TEST_VAR": "test_value",
	}).Run("sh", "-c", "echo $TEST_VAR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(string(result.Stdout), "test_value") {
		t.Errorf("expected stdout to contain 'test_value', got: %s", result.Stdout)
	}
}

func TestWithStdin(t *testing.T) {
	data := []byte{0x00, 0x01, 0xff, 'a', '\n'}
	exec := New()
	result, err := exec.WithStdin(bytes.NewReader(data)).Run("cat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(result.Stdout, data) {
		t.Errorf("expected binary round trip, got: %v", result.Stdout)
	}
}

func TestLocalSettingsReset(t *testing.T) {
	exec := New()
	if _, err := exec.WithDir("/").Run("true"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if exec.config.dir() != "" {
		t.Errorf("expected local dir to be reset, got: %q", exec.config.dir())
	}
	if exec.stdin != nil {
		t.Error("expected stdin to be reset")
	}
}

func TestWithTimeout(t *testing.T) {
	exec := New()
	_, err := exec.WithTimeout(100 * time.Millisecond).Run("sleep", "1")
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}

	if !strings.Contains(err.Error(), "killed") && !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("expected timeout error, got: %v", err)
	}
}

func TestWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	exec := New()
	_, err := exec.WithContext(ctx).Run("sleep", "1")
	if err == nil {
		t.Fatal("expected context cancellation error, got nil")
	}
}

func TestClone(t *testing.T) {
	exec := New(WithEnv(map[string]string{"GLOBAL": "1"}))
	clone := exec.Clone()
	clone.WithEnv(map[string]string{"LOCAL": "2"})

	if _, ok := exec.config.localEnv["LOCAL"]; ok {
		t.Error("clone modified the original's local environment")
	}
	if clone.(*Command).config.globalEnv["GLOBAL"] != "1" {
		t.Error("clone lost global environment")
	}
}

func TestStartPipesData(t *testing.T) {
	exec := New()
	p, err := exec.Start("cat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	go func() {
		_, _ = io.WriteString(p.Stdin(), "streamed")
		_ = p.CloseStdin()
	}()

	out, err := io.ReadAll(p.Stdout())
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if string(out) != "streamed" {
		t.Errorf("expected 'streamed', got: %q", out)
	}

	result, err := p.Wait()
	if err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("expected exit code 0, got: %d", result.ExitCode)
	}
}

func TestStartFailureCapturesStderr(t *testing.T) {
	exec := New()
	p, err := exec.Start("sh", "-c", "echo broken >&2; exit 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := p.Wait()
	if err == nil {
		t.Fatal("expected error from Wait")
	}
	if result.ExitCode != 2 {
		t.Errorf("expected exit code 2, got: %d", result.ExitCode)
	}
	if !strings.Contains(string(result.Stderr), "broken") {
		t.Errorf("expected stderr to contain 'broken', got: %q", result.Stderr)
	}

	// Wait is idempotent.
	again, _ := p.Wait()
	if again != result {
		t.Error("expected repeated Wait to return the same result")
	}
}

func TestKill(t *testing.T) {
	exec := New()
	p, err := exec.Start("sleep", "10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.Kill(); err != nil {
		t.Fatalf("unexpected kill error: %v", err)
	}

	start := time.Now()
	if _, err := p.Wait(); err == nil {
		t.Fatal("expected error after kill")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Wait did not return promptly after Kill")
	}
}

func TestExecErrorPlatform(t *testing.T) {
	_, err := New().Run("sh", "-c", "echo 'cat: /nope: No such file or directory' >&2; exit 1")
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got: %T", err)
	}
	if !execErr.Started() {
		t.Error("expected Started() to be true for a process that exited")
	}

	pe := execErr.Platform()
	if pe.Code() != perrors.CodeNotFound {
		t.Errorf("expected code %s, got: %s", perrors.CodeNotFound, pe.Code())
	}
	if got := pe.Context()[perrors.ContextExitCode]; got != 1 {
		t.Errorf("expected exit code 1 in context, got: %v", got)
	}

	_, err = New().Run("devfs-no-such-program")
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got: %T", err)
	}
	if execErr.Started() {
		t.Error("expected Started() to be false for a missing program")
	}
	if code := execErr.Platform().Code(); code != perrors.CodeNotFound {
		t.Errorf("expected code %s, got: %s", perrors.CodeNotFound, code)
	}
}
