package fstest

import (
	"context"
	"testing"

	"github.com/jmgilman/devaccess/fs/core"
)

// TestReadAccess tests reading and the boolean queries.
// Uses DefaultTestConfig() by default.
func TestReadAccess(t *testing.T, a core.Access, root core.Path) {
	TestReadAccessWithConfig(t, a, root, DefaultTestConfig())
}

// TestReadAccessWithConfig tests reading and the boolean queries with
// behavior configuration.
func TestReadAccessWithConfig(t *testing.T, a core.Access, root core.Path, config AccessTestConfig) {
	// Setup: a directory holding one file
	dir := root.Join("testdir")
	file := dir.Join("testfile.txt")
	mustMkdir(t, a, dir)
	mustWrite(t, a, file, "0123456789")

	const group = "ReadAccess"
	config.run(t, group, "ReadWhole", func(t *testing.T) {
		testReadWhole(t, a, file)
	})
	config.run(t, group, "ReadRanges", func(t *testing.T) {
		testReadRanges(t, a, file)
	})
	config.run(t, group, "ReadNotExist", func(t *testing.T) {
		testReadNotExist(t, a, dir)
	})
	config.run(t, group, "QueriesFile", func(t *testing.T) {
		testQueriesFile(t, a, file)
	})
	config.run(t, group, "QueriesDir", func(t *testing.T) {
		testQueriesDir(t, a, dir)
	})
	config.run(t, group, "QueriesNotExist", func(t *testing.T) {
		testQueriesNotExist(t, a, dir.Join("missing"))
	})
}

func testReadWhole(t *testing.T, a core.Access, file core.Path) {
	if got := mustRead(t, a, file); got != "0123456789" {
		t.Errorf("ReadFile(%s, -1, 0): got %q, want %q", file, got, "0123456789")
	}
}

// testReadRanges tests limit and offset combinations.
func testReadRanges(t *testing.T, a core.Access, file core.Path) {
	tests := []struct {
		limit, offset int64
		want          string
	}{
		{limit: 4, offset: 0, want: "0123"},
		{limit: -1, offset: 6, want: "6789"},
		{limit: 2, offset: 4, want: "45"},
		{limit: 3, offset: 5, want: "567"},
		{limit: 100, offset: 8, want: "89"},
		{limit: 0, offset: 0, want: ""},
	}
	for _, tt := range tests {
		data, err := a.ReadFile(context.Background(), file, tt.limit, tt.offset)
		if err != nil {
			t.Errorf("ReadFile(%s, %d, %d): got error %v, want nil", file, tt.limit, tt.offset, err)
			continue
		}
		if string(data) != tt.want {
			t.Errorf("ReadFile(%s, %d, %d): got %q, want %q", file, tt.limit, tt.offset, data, tt.want)
		}
	}
}

func testReadNotExist(t *testing.T, a core.Access, dir core.Path) {
	missing := dir.Join("missing.txt")
	if _, err := a.ReadFile(context.Background(), missing, -1, 0); err == nil {
		t.Errorf("ReadFile(%s): got nil error, want error", missing)
	}
}

func testQueriesFile(t *testing.T, a core.Access, file core.Path) {
	ctx := context.Background()
	checks := []struct {
		name string
		got  bool
		want bool
	}{
		{"Exists", a.Exists(ctx, file), true},
		{"IsFile", a.IsFile(ctx, file), true},
		{"IsDirectory", a.IsDirectory(ctx, file), false},
		{"IsSymlink", a.IsSymlink(ctx, file), false},
		{"IsReadableFile", a.IsReadableFile(ctx, file), true},
		{"IsWritableFile", a.IsWritableFile(ctx, file), true},
		{"IsReadableDirectory", a.IsReadableDirectory(ctx, file), false},
		{"IsWritableDirectory", a.IsWritableDirectory(ctx, file), false},
		{"IsExecutableFile", a.IsExecutableFile(ctx, file), false},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s(%s) = %v, want %v", c.name, file, c.got, c.want)
		}
	}
}

func testQueriesDir(t *testing.T, a core.Access, dir core.Path) {
	ctx := context.Background()
	if !a.IsDirectory(ctx, dir) {
		t.Errorf("IsDirectory(%s) = false, want true", dir)
	}
	if a.IsFile(ctx, dir) {
		t.Errorf("IsFile(%s) = true, want false", dir)
	}
	if !a.IsReadableDirectory(ctx, dir) {
		t.Errorf("IsReadableDirectory(%s) = false, want true", dir)
	}
	if !a.IsWritableDirectory(ctx, dir) {
		t.Errorf("IsWritableDirectory(%s) = false, want true", dir)
	}
	if a.IsReadableFile(ctx, dir) {
		t.Errorf("IsReadableFile(%s) = true, want false", dir)
	}
}

func testQueriesNotExist(t *testing.T, a core.Access, missing core.Path) {
	ctx := context.Background()
	if a.Exists(ctx, missing) {
		t.Errorf("Exists(%s) = true, want false", missing)
	}
	if a.IsFile(ctx, missing) || a.IsDirectory(ctx, missing) || a.IsSymlink(ctx, missing) {
		t.Errorf("kind queries on %s: got true, want false", missing)
	}
	if size := a.FileSize(ctx, missing); size != -1 {
		t.Errorf("FileSize(%s) = %d, want -1", missing, size)
	}
	if info := a.Stat(ctx, missing); info.Exists() || info.Size != -1 {
		t.Errorf("Stat(%s) = %+v, want missing entry with size -1", missing, info)
	}
}
