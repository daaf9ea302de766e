package fstest

import (
	"context"
	"testing"

	"github.com/jmgilman/devaccess/fs/core"
)

// TestWriteAccess tests file writes and directory creation.
// Uses DefaultTestConfig() by default.
func TestWriteAccess(t *testing.T, a core.Access, root core.Path) {
	TestWriteAccessWithConfig(t, a, root, DefaultTestConfig())
}

// TestWriteAccessWithConfig tests file writes and directory creation with
// behavior configuration.
func TestWriteAccessWithConfig(t *testing.T, a core.Access, root core.Path, config AccessTestConfig) {
	const group = "WriteAccess"
	config.run(t, group, "WriteNew", func(t *testing.T) {
		testWriteNew(t, a, root)
	})
	config.run(t, group, "Overwrite", func(t *testing.T) {
		testWriteOverwrite(t, a, root)
	})
	config.run(t, group, "WriteAtOffset", func(t *testing.T) {
		testWriteAtOffset(t, a, root)
	})
	config.run(t, group, "WriteEmpty", func(t *testing.T) {
		testWriteEmpty(t, a, root)
	})
	config.run(t, group, "EnsureExistingFile", func(t *testing.T) {
		testEnsureExistingFile(t, a, root)
	})
	config.run(t, group, "CreateDirectoryNested", func(t *testing.T) {
		testCreateDirectoryNested(t, a, root)
	})
	config.run(t, group, "EnsureWritableDirectory", func(t *testing.T) {
		testEnsureWritableDirectory(t, a, root)
	})
}

func testWriteNew(t *testing.T, a core.Access, root core.Path) {
	p := root.Join("new.txt")
	n, err := a.WriteFile(context.Background(), p, []byte("hello"), 0)
	if err != nil {
		t.Fatalf("WriteFile(%s): got error %v, want nil", p, err)
	}
	if n != 5 {
		t.Errorf("WriteFile(%s): wrote %d bytes, want 5", p, n)
	}
	if got := mustRead(t, a, p); got != "hello" {
		t.Errorf("ReadFile(%s): got %q, want %q", p, got, "hello")
	}
}

// testWriteOverwrite tests that a write at offset zero replaces the file.
func testWriteOverwrite(t *testing.T, a core.Access, root core.Path) {
	p := root.Join("overwrite.txt")
	mustWrite(t, a, p, "abcdef")
	mustWrite(t, a, p, "xyz")
	if got := mustRead(t, a, p); got != "xyz" {
		t.Errorf("ReadFile(%s): got %q, want %q", p, got, "xyz")
	}
}

// testWriteAtOffset tests that bytes before the offset survive and the file
// ends after the written range.
func testWriteAtOffset(t *testing.T, a core.Access, root core.Path) {
	p := root.Join("offset.txt")
	mustWrite(t, a, p, "0123456789")

	n, err := a.WriteFile(context.Background(), p, []byte("ab"), 4)
	if err != nil {
		t.Fatalf("WriteFile(%s, offset 4): got error %v, want nil", p, err)
	}
	if n != 2 {
		t.Errorf("WriteFile(%s, offset 4): wrote %d bytes, want 2", p, n)
	}
	if got := mustRead(t, a, p); got != "0123ab" {
		t.Errorf("ReadFile(%s): got %q, want %q", p, got, "0123ab")
	}
}

func testWriteEmpty(t *testing.T, a core.Access, root core.Path) {
	p := root.Join("empty.txt")
	n, err := a.WriteFile(context.Background(), p, nil, 0)
	if err != nil {
		t.Fatalf("WriteFile(%s, nil): got error %v, want nil", p, err)
	}
	if n != 0 {
		t.Errorf("WriteFile(%s, nil): wrote %d bytes, want 0", p, n)
	}
	if !a.IsFile(context.Background(), p) {
		t.Errorf("IsFile(%s) = false after empty write, want true", p)
	}
	if size := a.FileSize(context.Background(), p); size != 0 {
		t.Errorf("FileSize(%s) = %d, want 0", p, size)
	}
}

// testEnsureExistingFile tests creation of a missing file and that existing
// content is left alone.
func testEnsureExistingFile(t *testing.T, a core.Access, root core.Path) {
	ctx := context.Background()

	created := root.Join("ensure-new.txt")
	if err := a.EnsureExistingFile(ctx, created); err != nil {
		t.Fatalf("EnsureExistingFile(%s): got error %v, want nil", created, err)
	}
	if !a.IsFile(ctx, created) {
		t.Errorf("IsFile(%s) = false, want true", created)
	}

	existing := root.Join("ensure-old.txt")
	mustWrite(t, a, existing, "keep")
	if err := a.EnsureExistingFile(ctx, existing); err != nil {
		t.Fatalf("EnsureExistingFile(%s): got error %v, want nil", existing, err)
	}
	if got := mustRead(t, a, existing); got != "keep" {
		t.Errorf("ReadFile(%s): got %q, want %q", existing, got, "keep")
	}
}

func testCreateDirectoryNested(t *testing.T, a core.Access, root core.Path) {
	ctx := context.Background()
	p := root.Join("a", "b", "c")
	if err := a.CreateDirectory(ctx, p); err != nil {
		t.Fatalf("CreateDirectory(%s): got error %v, want nil", p, err)
	}
	if !a.IsDirectory(ctx, p) {
		t.Errorf("IsDirectory(%s) = false, want true", p)
	}
	// Creating an existing directory is not an error.
	if err := a.CreateDirectory(ctx, p); err != nil {
		t.Errorf("CreateDirectory(%s) again: got error %v, want nil", p, err)
	}
}

func testEnsureWritableDirectory(t *testing.T, a core.Access, root core.Path) {
	ctx := context.Background()
	p := root.Join("ensured")
	if err := a.EnsureWritableDirectory(ctx, p); err != nil {
		t.Fatalf("EnsureWritableDirectory(%s): got error %v, want nil", p, err)
	}
	if !a.IsWritableDirectory(ctx, p) {
		t.Errorf("IsWritableDirectory(%s) = false, want true", p)
	}
	if err := a.EnsureWritableDirectory(ctx, p); err != nil {
		t.Errorf("EnsureWritableDirectory(%s) again: got error %v, want nil", p, err)
	}
}
