package fstest

import (
	"context"
	"strings"
	"testing"

	"github.com/jmgilman/devaccess/fs/core"
)

// TestTempAccess tests CreateTempFile.
// Uses DefaultTestConfig() by default.
func TestTempAccess(t *testing.T, a core.Access, root core.Path) {
	TestTempAccessWithConfig(t, a, root, DefaultTestConfig())
}

// TestTempAccessWithConfig tests CreateTempFile with behavior configuration.
func TestTempAccessWithConfig(t *testing.T, a core.Access, root core.Path, config AccessTestConfig) {
	const group = "TempAccess"
	config.run(t, group, "Template", func(t *testing.T) {
		testTempTemplate(t, a, root)
	})
	config.run(t, group, "Unique", func(t *testing.T) {
		testTempUnique(t, a, root)
	})
	config.run(t, group, "PlainName", func(t *testing.T) {
		testTempPlainName(t, a, root)
	})
}

func createTemp(t *testing.T, a core.Access, template core.Path) core.Path {
	t.Helper()
	ctx := context.Background()
	p, err := a.CreateTempFile(ctx, template)
	if err != nil {
		t.Fatalf("CreateTempFile(%s): got error %v, want nil", template, err)
	}
	if !a.IsFile(ctx, p) {
		t.Fatalf("IsFile(%s) = false for a new temporary file, want true", p)
	}
	if size := a.FileSize(ctx, p); size != 0 {
		t.Errorf("FileSize(%s) = %d for a new temporary file, want 0", p, size)
	}
	if p.Parent().Path != template.Parent().Path {
		t.Errorf("CreateTempFile(%s) = %s, want a file in %s", template, p, template.Parent())
	}
	return p
}

func testTempTemplate(t *testing.T, a core.Access, root core.Path) {
	template := root.Join("tmpXXXXXX")
	p := createTemp(t, a, template)
	if p.Path == template.Path {
		t.Errorf("CreateTempFile(%s): placeholder was not replaced", template)
	}
	if !strings.HasPrefix(p.Base(), "tmp") || len(p.Base()) != len("tmpXXXXXX") {
		t.Errorf("CreateTempFile(%s) = %s, want tmp followed by six characters", template, p)
	}
}

func testTempUnique(t *testing.T, a core.Access, root core.Path) {
	template := root.Join("uniqXXXXXX")
	first := createTemp(t, a, template)
	second := createTemp(t, a, template)
	if first.Path == second.Path {
		t.Errorf("CreateTempFile(%s) returned %s twice", template, first)
	}
}

// testTempPlainName tests that a name without placeholders gets a random
// suffix appended.
func testTempPlainName(t *testing.T, a core.Access, root core.Path) {
	template := root.Join("plain")
	p := createTemp(t, a, template)
	base := p.Base()
	if !strings.HasPrefix(base, "plain.") || len(base) != len("plain.")+6 {
		t.Errorf("CreateTempFile(%s) = %s, want plain. followed by six characters", template, p)
	}
}
