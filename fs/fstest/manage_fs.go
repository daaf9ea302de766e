package fstest

import (
	"context"
	"testing"

	"github.com/jmgilman/devaccess/fs/core"
)

// TestManageAccess tests rename, copy and removal.
// Uses DefaultTestConfig() by default.
func TestManageAccess(t *testing.T, a core.Access, root core.Path) {
	TestManageAccessWithConfig(t, a, root, DefaultTestConfig())
}

// TestManageAccessWithConfig tests rename, copy and removal with behavior
// configuration.
func TestManageAccessWithConfig(t *testing.T, a core.Access, root core.Path, config AccessTestConfig) {
	const group = "ManageAccess"
	config.run(t, group, "RenameFile", func(t *testing.T) {
		testRenameFile(t, a, root)
	})
	config.run(t, group, "CopyFile", func(t *testing.T) {
		testCopyFile(t, a, root)
	})
	config.run(t, group, "RemoveFile", func(t *testing.T) {
		testRemoveFile(t, a, root)
	})
	config.run(t, group, "RemoveRecursively", func(t *testing.T) {
		testRemoveRecursively(t, a, root)
	})
	config.run(t, group, "CopyRecursively", func(t *testing.T) {
		testCopyRecursively(t, a, root)
	})
	config.run(t, group, "CopyRecursivelyFromFile", func(t *testing.T) {
		testCopyRecursivelyFromFile(t, a, root)
	})
}

func testRenameFile(t *testing.T, a core.Access, root core.Path) {
	ctx := context.Background()
	src := root.Join("before.txt")
	dst := root.Join("after.txt")
	mustWrite(t, a, src, "moved")

	if err := a.RenameFile(ctx, src, dst); err != nil {
		t.Fatalf("RenameFile(%s, %s): got error %v, want nil", src, dst, err)
	}
	if a.Exists(ctx, src) {
		t.Errorf("Exists(%s) = true after rename, want false", src)
	}
	if got := mustRead(t, a, dst); got != "moved" {
		t.Errorf("ReadFile(%s): got %q, want %q", dst, got, "moved")
	}
}

// testCopyFile tests a copy to a new name and over an existing file.
func testCopyFile(t *testing.T, a core.Access, root core.Path) {
	ctx := context.Background()
	src := root.Join("source.txt")
	dst := root.Join("copy.txt")
	mustWrite(t, a, src, "copied content")

	if err := a.CopyFile(ctx, src, dst); err != nil {
		t.Fatalf("CopyFile(%s, %s): got error %v, want nil", src, dst, err)
	}
	if got := mustRead(t, a, dst); got != "copied content" {
		t.Errorf("ReadFile(%s): got %q, want %q", dst, got, "copied content")
	}
	if got := mustRead(t, a, src); got != "copied content" {
		t.Errorf("ReadFile(%s): source changed to %q", src, got)
	}

	mustWrite(t, a, src, "v2")
	if err := a.CopyFile(ctx, src, dst); err != nil {
		t.Fatalf("CopyFile(%s, %s) over existing: got error %v, want nil", src, dst, err)
	}
	if got := mustRead(t, a, dst); got != "v2" {
		t.Errorf("ReadFile(%s): got %q, want %q", dst, got, "v2")
	}
}

func testRemoveFile(t *testing.T, a core.Access, root core.Path) {
	ctx := context.Background()
	p := root.Join("doomed.txt")
	mustWrite(t, a, p, "x")

	if err := a.RemoveFile(ctx, p); err != nil {
		t.Fatalf("RemoveFile(%s): got error %v, want nil", p, err)
	}
	if a.Exists(ctx, p) {
		t.Errorf("Exists(%s) = true after remove, want false", p)
	}
	if err := a.RemoveFile(ctx, p); err == nil {
		t.Errorf("RemoveFile(%s) on missing file: got nil error, want error", p)
	}
}

func testRemoveRecursively(t *testing.T, a core.Access, root core.Path) {
	ctx := context.Background()
	tree := root.Join("tree")
	mustMkdir(t, a, tree.Join("x", "y"))
	mustWrite(t, a, tree.Join("top.txt"), "1")
	mustWrite(t, a, tree.Join("x", "y", "deep.txt"), "2")

	if err := a.RemoveRecursively(ctx, tree); err != nil {
		t.Fatalf("RemoveRecursively(%s): got error %v, want nil", tree, err)
	}
	if a.Exists(ctx, tree) {
		t.Errorf("Exists(%s) = true after recursive remove, want false", tree)
	}
	if !a.IsDirectory(ctx, root) {
		t.Errorf("IsDirectory(%s) = false, parent must survive", root)
	}

	// Removing something that is already gone is not an error.
	if err := a.RemoveRecursively(ctx, tree); err != nil {
		t.Errorf("RemoveRecursively(%s) on missing tree: got error %v, want nil", tree, err)
	}
}

// testCopyRecursively tests copying a tree of three files in two nested
// subdirectories into a directory that does not exist yet.
func testCopyRecursively(t *testing.T, a core.Access, root core.Path) {
	ctx := context.Background()
	src := root.Join("src")
	dst := root.Join("dst")
	files := map[string]string{
		"one.txt":           "1",
		"sub/two.txt":       "22",
		"sub/inner/three.x": "333",
	}
	mustMkdir(t, a, src.Join("sub", "inner"))
	for name, content := range files {
		mustWrite(t, a, src.Join(name), content)
	}

	if err := a.CopyRecursively(ctx, src, dst); err != nil {
		t.Fatalf("CopyRecursively(%s, %s): got error %v, want nil", src, dst, err)
	}
	for name, content := range files {
		if got := mustRead(t, a, dst.Join(name)); got != content {
			t.Errorf("ReadFile(%s): got %q, want %q", dst.Join(name), got, content)
		}
	}
}

func testCopyRecursivelyFromFile(t *testing.T, a core.Access, root core.Path) {
	src := root.Join("plain.txt")
	mustWrite(t, a, src, "x")
	if err := a.CopyRecursively(context.Background(), src, root.Join("out")); err == nil {
		t.Errorf("CopyRecursively(%s): got nil error for a file source, want error", src)
	}
}
