package exec

import (
	"strings"
	"testing"
)

func TestWrapperBasicExecution(t *testing.T) {
	exec := New()
	echo := NewWrapper(exec, "echo")

	result, err := echo.Run("hello", "world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(string(result.Stdout), "hello world") {
		t.Errorf("expected stdout to contain 'hello world', got: %s", result.Stdout)
	}
}

func TestWrapperPrefix(t *testing.T) {
	sh := NewWrapper(New(), "sh", "-c")

	result, err := sh.Run("echo $0", "prefixed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.TrimSpace(string(result.Stdout)) != "prefixed" {
		t.Errorf("expected 'prefixed', got: %q", result.Stdout)
	}

	if got := strings.Join(sh.Prefix(), " "); got != "sh -c" {
		t.Errorf("Prefix() = %q", got)
	}
}

func TestWrapperStart(t *testing.T) {
	sh := NewWrapper(New(), "sh", "-c")
	p, err := sh.Start("exit 0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Wait(); err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}
}

func TestWrapperClone(t *testing.T) {
	w := NewWrapper(New(), "echo")
	clone := w.Clone().(*CommandWrapper)
	clone.prefix[0] = "changed"

	if w.prefix[0] != "echo" {
		t.Error("clone shares prefix with original")
	}
}
