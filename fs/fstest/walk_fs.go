package fstest

import (
	"context"
	"slices"
	"testing"

	"github.com/jmgilman/devaccess/fs/core"
)

// TestIterateAccess tests IterateDirectory filters, recursion and early stop.
// Uses DefaultTestConfig() by default.
func TestIterateAccess(t *testing.T, a core.Access, root core.Path) {
	TestIterateAccessWithConfig(t, a, root, DefaultTestConfig())
}

// TestIterateAccessWithConfig tests directory iteration with behavior
// configuration.
func TestIterateAccessWithConfig(t *testing.T, a core.Access, root core.Path, config AccessTestConfig) {
	// Setup: a.txt b.log .hidden sub/ sub/c.txt sub/.deep
	dir := root.Join("walk")
	mustMkdir(t, a, dir.Join("sub"))
	mustWrite(t, a, dir.Join("a.txt"), "a")
	mustWrite(t, a, dir.Join("b.log"), "bb")
	mustWrite(t, a, dir.Join(".hidden"), "h")
	mustWrite(t, a, dir.Join("sub", "c.txt"), "ccc")
	mustWrite(t, a, dir.Join("sub", ".deep"), "d")

	const group = "IterateAccess"
	cases := []struct {
		name   string
		filter core.Filter
		want   []string
	}{
		{"Default", core.Filter{}, []string{"a.txt", "b.log", "sub"}},
		{"Recursive", core.Filter{Recursive: true}, []string{"a.txt", "b.log", "sub", "sub/c.txt"}},
		{"Glob", core.Filter{NameFilters: []string{"*.TXT"}, Recursive: true}, []string{"a.txt", "sub/c.txt"}},
		{"GlobCaseSensitive", core.Filter{NameFilters: []string{"*.TXT"}, Flags: core.FilterCaseSensitive}, nil},
		{"SeveralGlobs", core.Filter{NameFilters: []string{"*.log", "s*"}}, []string{"b.log", "sub"}},
		{"FilesOnly", core.Filter{Flags: core.FilterFiles, Recursive: true}, []string{"a.txt", "b.log", "sub/c.txt"}},
		{"DirsOnly", core.Filter{Flags: core.FilterDirs, Recursive: true}, []string{"sub"}},
		{"Hidden", core.Filter{Flags: core.FilterHidden}, []string{".hidden", "a.txt", "b.log", "sub"}},
	}
	for _, tc := range cases {
		config.run(t, group, tc.name, func(t *testing.T) {
			got := iterateNames(t, a, dir, tc.filter)
			if !slices.Equal(got, tc.want) {
				t.Errorf("IterateDirectory(%s, %+v) = %v, want %v", dir, tc.filter, got, tc.want)
			}
		})
	}

	config.run(t, group, "Readable", func(t *testing.T) {
		if !config.AccessFilters {
			t.Skip("Backend does not filter by access")
			return
		}
		filter := core.Filter{Flags: core.FilterFiles | core.FilterReadable}
		want := []string{"a.txt", "b.log"}
		if got := iterateNames(t, a, dir, filter); !slices.Equal(got, want) {
			t.Errorf("IterateDirectory(%s, readable files) = %v, want %v", dir, got, want)
		}
	})
	config.run(t, group, "Stop", func(t *testing.T) {
		testIterateStop(t, a, dir)
	})
	config.run(t, group, "WithInfo", func(t *testing.T) {
		testIterateWithInfo(t, a, dir)
	})
	config.run(t, group, "Entries", func(t *testing.T) {
		testEntries(t, a, dir)
	})
}

// iterateNames collects the entries of dir relative to dir, sorted.
func iterateNames(t *testing.T, a core.Access, dir core.Path, filter core.Filter) []string {
	t.Helper()
	var names []string
	err := a.IterateDirectory(context.Background(), dir, filter,
		core.PathCallback(func(p core.Path) core.IterationPolicy {
			rel, ok := p.RelativeTo(dir)
			if !ok || rel == "." {
				t.Errorf("IterateDirectory(%s): unexpected entry %s", dir, p)
				return core.Continue
			}
			names = append(names, rel)
			return core.Continue
		}))
	if err != nil {
		t.Fatalf("IterateDirectory(%s): got error %v, want nil", dir, err)
	}
	slices.Sort(names)
	return names
}

func testIterateStop(t *testing.T, a core.Access, dir core.Path) {
	calls := 0
	err := a.IterateDirectory(context.Background(), dir, core.Filter{Recursive: true},
		core.PathCallback(func(core.Path) core.IterationPolicy {
			calls++
			return core.Stop
		}))
	if err != nil {
		t.Fatalf("IterateDirectory(%s): got error %v, want nil", dir, err)
	}
	if calls != 1 {
		t.Errorf("IterateDirectory(%s): callback ran %d times after Stop, want 1", dir, calls)
	}
}

func testIterateWithInfo(t *testing.T, a core.Access, dir core.Path) {
	infos := map[string]core.StatInfo{}
	err := a.IterateDirectory(context.Background(), dir, core.Filter{Recursive: true},
		core.InfoCallback(func(p core.Path, info core.StatInfo) core.IterationPolicy {
			rel, _ := p.RelativeTo(dir)
			infos[rel] = info
			return core.Continue
		}))
	if err != nil {
		t.Fatalf("IterateDirectory(%s): got error %v, want nil", dir, err)
	}

	if info := infos["sub/c.txt"]; !info.IsFile() || info.Size != 3 {
		t.Errorf("info for sub/c.txt = %+v, want file of size 3", info)
	}
	if info := infos["sub"]; !info.IsDirectory() {
		t.Errorf("info for sub = %+v, want directory", info)
	}
}

// testEntries tests the range-over-func view of IterateDirectory.
func testEntries(t *testing.T, a core.Access, dir core.Path) {
	var names []string
	for e, err := range core.Entries(context.Background(), a, dir, core.Filter{Flags: core.FilterFiles}) {
		if err != nil {
			t.Fatalf("Entries(%s): got error %v", dir, err)
		}
		names = append(names, e.Path.Base())
		if !e.Info.IsFile() {
			t.Errorf("Entries(%s): %s is not reported as a file", dir, e.Path)
		}
	}
	slices.Sort(names)
	if want := []string{"a.txt", "b.log"}; !slices.Equal(names, want) {
		t.Errorf("Entries(%s) = %v, want %v", dir, names, want)
	}
}
