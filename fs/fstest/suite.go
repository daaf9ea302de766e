// Package fstest provides a conformance test suite for validating backend
// implementations against the core.Access interface contracts.
//
// This package contains test functions that can be imported and executed by
// backend packages to verify they correctly implement core.Access. Every
// group runs in a fresh, empty, writable directory on the device under test,
// so the suite can run against the local machine as well as a container.
//
// The suite validates interface contracts, not backend-specific behavior.
// Capabilities a backend may legitimately lack are switched off through
// AccessTestConfig.
//
// Example usage:
//
//	func TestConformance(t *testing.T) {
//	    fstest.TestSuite(t, func(t *testing.T) (core.Access, core.Path) {
//	        return mybackend.New(), core.Local(t.TempDir())
//	    })
//	}
package fstest

import (
	"context"
	"slices"
	"testing"

	"github.com/jmgilman/devaccess/fs/core"
)

// NewEnvFunc returns the backend under test and an empty, writable directory
// on its device.
type NewEnvFunc func(t *testing.T) (core.Access, core.Path)

// AccessTestConfig configures the test suite to match backend characteristics.
type AccessTestConfig struct {
	// FileIDs indicates FileID returns identifiers that survive renames.
	FileIDs bool

	// BytesAvailable indicates BytesAvailable reports the free space.
	BytesAvailable bool

	// AccessFilters indicates IterateDirectory supports the Readable,
	// Writable and Executable filters.
	AccessFilters bool

	// SkipTests lists specific test names to skip (for edge cases).
	// Format: "TestGroup/SubTest" (e.g., "IterateAccess/Hidden").
	SkipTests []string
}

// DefaultTestConfig returns the configuration for a fully capable backend.
func DefaultTestConfig() AccessTestConfig {
	return AccessTestConfig{
		FileIDs:        true,
		BytesAvailable: true,
		AccessFilters:  true,
	}
}

// TestSuite runs all conformance tests with DefaultTestConfig.
func TestSuite(t *testing.T, newEnv NewEnvFunc) {
	TestSuiteWithConfig(t, newEnv, DefaultTestConfig())
}

// TestSuiteWithConfig runs all conformance tests with behavior configuration.
func TestSuiteWithConfig(t *testing.T, newEnv NewEnvFunc, config AccessTestConfig) {
	groups := []struct {
		name string
		run  func(*testing.T, core.Access, core.Path, AccessTestConfig)
	}{
		{"ReadAccess", TestReadAccessWithConfig},
		{"WriteAccess", TestWriteAccessWithConfig},
		{"ManageAccess", TestManageAccessWithConfig},
		{"MetadataAccess", TestMetadataAccessWithConfig},
		{"IterateAccess", TestIterateAccessWithConfig},
		{"TempAccess", TestTempAccessWithConfig},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if config.skip(g.name) {
				t.Skip("Skipped by backend configuration")
				return
			}
			a, root := newEnv(t)
			g.run(t, a, root, config)
		})
	}
}

func (c AccessTestConfig) skip(name string) bool {
	return slices.Contains(c.SkipTests, name)
}

// run executes a subtest unless it is listed in SkipTests.
func (c AccessTestConfig) run(t *testing.T, group, name string, fn func(t *testing.T)) {
	t.Run(name, func(t *testing.T) {
		if c.skip(group + "/" + name) {
			t.Skip("Skipped by backend configuration")
			return
		}
		fn(t)
	})
}

func mustWrite(t *testing.T, a core.Access, p core.Path, data string) {
	t.Helper()
	if _, err := a.WriteFile(context.Background(), p, []byte(data), 0); err != nil {
		t.Fatalf("WriteFile(%s): setup failed: %v", p, err)
	}
}

func mustMkdir(t *testing.T, a core.Access, p core.Path) {
	t.Helper()
	if err := a.CreateDirectory(context.Background(), p); err != nil {
		t.Fatalf("CreateDirectory(%s): setup failed: %v", p, err)
	}
}

func mustRead(t *testing.T, a core.Access, p core.Path) string {
	t.Helper()
	data, err := a.ReadFile(context.Background(), p, -1, 0)
	if err != nil {
		t.Fatalf("ReadFile(%s): got error %v, want nil", p, err)
	}
	return string(data)
}
