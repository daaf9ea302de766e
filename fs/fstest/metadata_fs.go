package fstest

import (
	"context"
	"testing"
	"time"

	"github.com/jmgilman/devaccess/fs/core"
)

// TestMetadataAccess tests permissions, sizes, times, identifiers and Stat.
// Uses DefaultTestConfig() by default.
func TestMetadataAccess(t *testing.T, a core.Access, root core.Path) {
	TestMetadataAccessWithConfig(t, a, root, DefaultTestConfig())
}

// TestMetadataAccessWithConfig tests metadata queries with behavior
// configuration.
func TestMetadataAccessWithConfig(t *testing.T, a core.Access, root core.Path, config AccessTestConfig) {
	const group = "MetadataAccess"
	config.run(t, group, "Permissions", func(t *testing.T) {
		testPermissions(t, a, root)
	})
	config.run(t, group, "FileSize", func(t *testing.T) {
		testFileSize(t, a, root)
	})
	config.run(t, group, "LastModified", func(t *testing.T) {
		testLastModified(t, a, root)
	})
	config.run(t, group, "FileID", func(t *testing.T) {
		if !config.FileIDs {
			t.Skip("Backend does not report file identifiers")
			return
		}
		testFileID(t, a, root)
	})
	config.run(t, group, "Stat", func(t *testing.T) {
		testStat(t, a, root)
	})
	config.run(t, group, "BytesAvailable", func(t *testing.T) {
		if !config.BytesAvailable {
			t.Skip("Backend does not report free space")
			return
		}
		if n := a.BytesAvailable(context.Background(), root); n <= 0 {
			t.Errorf("BytesAvailable(%s) = %d, want > 0", root, n)
		}
	})
	config.run(t, group, "Device", func(t *testing.T) {
		testDevice(t, a, root)
	})
}

// testPermissions tests that permissions read back as they were set.
func testPermissions(t *testing.T, a core.Access, root core.Path) {
	ctx := context.Background()
	p := root.Join("perms.txt")
	mustWrite(t, a, p, "x")

	for _, want := range []core.Permissions{0x644, 0x600, 0x755, 0x640, 0x700, 0x444} {
		if err := a.SetPermissions(ctx, p, want); err != nil {
			t.Fatalf("SetPermissions(%s, %s): got error %v, want nil", p, want, err)
		}
		got, err := a.Permissions(ctx, p)
		if err != nil {
			t.Fatalf("Permissions(%s): got error %v, want nil", p, err)
		}
		if got != want {
			t.Errorf("Permissions(%s) = %s, want %s", p, got, want)
		}
		if stat := a.Stat(ctx, p).Permissions(); stat != want {
			t.Errorf("Stat(%s).Permissions() = %s, want %s", p, stat, want)
		}
	}

	if err := a.SetPermissions(ctx, p, 0x755); err != nil {
		t.Fatalf("SetPermissions(%s): got error %v, want nil", p, err)
	}
	if !a.IsExecutableFile(ctx, p) {
		t.Errorf("IsExecutableFile(%s) = false after chmod 755, want true", p)
	}
}

func testFileSize(t *testing.T, a core.Access, root core.Path) {
	p := root.Join("sized.bin")
	mustWrite(t, a, p, "twelve bytes")
	if got := a.FileSize(context.Background(), p); got != 12 {
		t.Errorf("FileSize(%s) = %d, want 12", p, got)
	}
}

func testLastModified(t *testing.T, a core.Access, root core.Path) {
	p := root.Join("mtime.txt")
	mustWrite(t, a, p, "x")

	got := a.LastModified(context.Background(), p)
	if got.IsZero() {
		t.Fatalf("LastModified(%s): got zero time", p)
	}
	// Device clocks may drift from the test host.
	if d := time.Since(got); d > time.Hour || d < -time.Hour {
		t.Errorf("LastModified(%s) = %v, want close to now", p, got)
	}
}

// testFileID tests that identifiers follow a file across a rename and
// differ between files.
func testFileID(t *testing.T, a core.Access, root core.Path) {
	ctx := context.Background()
	first := root.Join("first.txt")
	second := root.Join("second.txt")
	mustWrite(t, a, first, "1")
	mustWrite(t, a, second, "2")

	id := a.FileID(ctx, first)
	if id == "" {
		t.Fatalf("FileID(%s): got empty identifier", first)
	}
	if other := a.FileID(ctx, second); other == id {
		t.Errorf("FileID(%s) = FileID(%s) = %q, want different", first, second, id)
	}

	renamed := root.Join("renamed.txt")
	if err := a.RenameFile(ctx, first, renamed); err != nil {
		t.Fatalf("RenameFile(%s): got error %v", first, err)
	}
	if got := a.FileID(ctx, renamed); got != id {
		t.Errorf("FileID(%s) = %q after rename, want %q", renamed, got, id)
	}
}

func testStat(t *testing.T, a core.Access, root core.Path) {
	ctx := context.Background()
	file := root.Join("stat.txt")
	hidden := root.Join(".stat-hidden")
	dir := root.Join("statdir")
	mustWrite(t, a, file, "abc")
	mustWrite(t, a, hidden, "")
	mustMkdir(t, a, dir)

	info := a.Stat(ctx, file)
	if !info.Exists() || !info.IsFile() || info.IsDirectory() {
		t.Errorf("Stat(%s) flags = %#x, want existing regular file", file, info.Flags)
	}
	if info.Size != 3 {
		t.Errorf("Stat(%s).Size = %d, want 3", file, info.Size)
	}
	if info.IsHidden() {
		t.Errorf("Stat(%s).IsHidden() = true, want false", file)
	}

	if !a.Stat(ctx, hidden).IsHidden() {
		t.Errorf("Stat(%s).IsHidden() = false, want true", hidden)
	}

	dinfo := a.Stat(ctx, dir)
	if !dinfo.Exists() || !dinfo.IsDirectory() || dinfo.IsFile() {
		t.Errorf("Stat(%s) flags = %#x, want existing directory", dir, dinfo.Flags)
	}

	rinfo := a.Stat(ctx, root.WithPath("/"))
	if !rinfo.IsDirectory() || !rinfo.Exists() {
		t.Errorf("Stat(/) flags = %#x, want existing directory", rinfo.Flags)
	}
}

func testDevice(t *testing.T, a core.Access, root core.Path) {
	ctx := context.Background()
	if os := a.OSType(ctx, root); os == core.OSUnknown {
		t.Errorf("OSType(%s) = %s, want a known system", root, os)
	}
	env, err := a.Environment(ctx, root)
	if err != nil {
		t.Fatalf("Environment(%s): got error %v, want nil", root, err)
	}
	if env["PATH"] == "" {
		t.Errorf("Environment(%s): PATH is empty", root)
	}
}
