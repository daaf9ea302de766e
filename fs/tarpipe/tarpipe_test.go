package tarpipe

import (
	"context"
	"os"
	osexec "os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/exec"
	"github.com/jmgilman/devaccess/fs/core"
	"github.com/jmgilman/devaccess/fs/desktop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireTar(t *testing.T) {
	t.Helper()
	if _, err := osexec.LookPath("tar"); err != nil {
		t.Skip("tar not available")
	}
}

func setupSource(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"top.txt":         "top",
		"one/a.txt":       "a",
		"one/two/b.bin":   "bbbb",
		"one/two/.hidden": "h",
	}
	for name, content := range files {
		full := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return dir
}

func listTree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		require.NoError(t, err)
		rel, _ := filepath.Rel(root, p)
		if rel != "." {
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	slices.Sort(out)
	return out
}

// recorder counts the processes started through it and can replace the
// producer or consumer command.
type recorder struct {
	*desktop.Desktop
	started  []string
	producer *exec.CommandLine
	consumer *exec.CommandLine
	noTar    bool
}

func (r *recorder) SearchInPath(ctx context.Context, p core.Path, name string) (core.Path, error) {
	if r.noTar {
		return core.Path{}, perrors.New(perrors.CodeNotFound, "no tar")
	}
	return r.Desktop.SearchInPath(ctx, p, name)
}

func (r *recorder) StartProcess(ctx context.Context, p core.Path, cmd exec.CommandLine) (*exec.Process, error) {
	r.started = append(r.started, cmd.String())
	if r.producer != nil && slices.Contains(cmd.Argv(), "-cf") {
		cmd = *r.producer
	}
	if r.consumer != nil && slices.Contains(cmd.Argv(), "xf") {
		cmd = *r.consumer
	}
	return r.Desktop.StartProcess(ctx, p, cmd)
}

func TestCopyRecursivelyStreamsTar(t *testing.T) {
	requireTar(t)
	ctx := context.Background()
	src := setupSource(t)
	dst := filepath.Join(t.TempDir(), "target")

	rec := &recorder{Desktop: desktop.New()}
	c := New(core.Single(rec))

	require.NoError(t, c.CopyRecursively(ctx, core.Local(src), core.Local(dst)))

	assert.Equal(t, listTree(t, src), listTree(t, dst))
	data, err := os.ReadFile(filepath.Join(dst, "one", "two", "b.bin"))
	require.NoError(t, err)
	assert.Equal(t, "bbbb", string(data))

	require.Len(t, rec.started, 2)
	assert.Contains(t, rec.started[0], "xf - -C")
	assert.Contains(t, rec.started[1], "-cf - .")
}

func TestCopyRecursivelyProducerFailure(t *testing.T) {
	requireTar(t)
	ctx := context.Background()
	src := setupSource(t)
	dst := filepath.Join(t.TempDir(), "target")

	failing := exec.NewCommandLine("sh", "-c", "echo archive broke >&2; exit 2")
	rec := &recorder{Desktop: desktop.New(), producer: &failing}
	c := New(core.Single(rec))

	err := c.CopyRecursively(ctx, core.Local(src), core.Local(dst))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "while trying to create tar archive from source")
	assert.Contains(t, err.Error(), "archive broke")
	assert.Equal(t, perrors.CodeExecutionFailed, perrors.GetCode(err))
}

func TestCopyRecursivelyProducerFailureKillsConsumer(t *testing.T) {
	requireTar(t)
	ctx := context.Background()
	src := setupSource(t)
	dst := filepath.Join(t.TempDir(), "target")
	marker := filepath.Join(t.TempDir(), "survived")

	// The consumer only reaches the marker if it outlives the end of its
	// input, which a kill prevents.
	failing := exec.NewCommandLine("sh", "-c", "exit 2")
	consumer := exec.NewCommandLine("sh", "-c", "cat >/dev/null; echo survived >"+marker)
	rec := &recorder{Desktop: desktop.New(), producer: &failing, consumer: &consumer}
	c := New(core.Single(rec))

	err := c.CopyRecursively(ctx, core.Local(src), core.Local(dst))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "while trying to create tar archive from source")
	assert.NoFileExists(t, marker)
}

func TestCopyRecursivelyConsumerFailure(t *testing.T) {
	requireTar(t)
	ctx := context.Background()
	src := setupSource(t)
	dst := filepath.Join(t.TempDir(), "target")

	consumer := exec.NewCommandLine("sh", "-c", "cat >/dev/null; echo extract broke >&2; exit 3")
	rec := &recorder{Desktop: desktop.New(), consumer: &consumer}
	c := New(core.Single(rec))

	err := c.CopyRecursively(ctx, core.Local(src), core.Local(dst))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "while trying to extract tar archive to target")
	assert.Contains(t, err.Error(), "extract broke")
	assert.Equal(t, perrors.CodeExecutionFailed, perrors.GetCode(err))
	assert.Contains(t, perrors.ToJSON(err).Context[perrors.ContextCommand], "xf - -C")
	require.Len(t, rec.started, 2)
}

// mounted serves virtual paths below prefix from a directory on disk.
type mounted struct {
	*recorder
	prefix string
	dir    string
}

func (m *mounted) real(p core.Path) core.Path {
	if rest, ok := strings.CutPrefix(p.Path, m.prefix); ok {
		return core.Local(m.dir + rest)
	}
	return p
}

func (m *mounted) EnsureWritableDirectory(ctx context.Context, p core.Path) error {
	return m.recorder.EnsureWritableDirectory(ctx, m.real(p))
}

func (m *mounted) CopyFile(ctx context.Context, src, dst core.Path) error {
	return m.recorder.CopyFile(ctx, m.real(src), m.real(dst))
}

func TestCopyRecursivelyVirtualTargetCopiesFileByFile(t *testing.T) {
	requireTar(t)

	for _, prefix := range []string{":/resources", core.DeviceRoot + "/sh/box"} {
		t.Run(prefix, func(t *testing.T) {
			ctx := context.Background()
			src := setupSource(t)
			dir := t.TempDir()

			m := &mounted{recorder: &recorder{Desktop: desktop.New()}, prefix: prefix, dir: dir}
			c := New(core.Single(m))

			dst := core.Local(prefix + "/out")
			require.True(t, dst.IsVirtual())
			require.NoError(t, c.CopyRecursively(ctx, core.Local(src), dst))

			assert.Empty(t, m.started, "no tar process may run for a virtual path")
			assert.Equal(t, []string{"one", "one/a.txt", "one/two", "one/two/b.bin", "top.txt"},
				listTree(t, filepath.Join(dir, "out")))
		})
	}
}

func TestCopyRecursivelyFallsBackWithoutTar(t *testing.T) {
	ctx := context.Background()
	src := setupSource(t)
	dst := filepath.Join(t.TempDir(), "target")

	rec := &recorder{Desktop: desktop.New(), noTar: true}
	c := New(core.Single(rec))

	require.NoError(t, c.CopyRecursively(ctx, core.Local(src), core.Local(dst)))
	assert.Empty(t, rec.started)

	// The per-file copy skips hidden files.
	assert.Equal(t, []string{"one", "one/a.txt", "one/two", "one/two/b.bin", "top.txt"}, listTree(t, dst))

	// The missing tar is remembered.
	require.NoError(t, c.CopyRecursively(ctx, core.Local(src), core.Local(dst)))
	assert.Empty(t, rec.started)
}

func TestCopyRecursivelyWithoutTarOption(t *testing.T) {
	ctx := context.Background()
	src := setupSource(t)
	dst := filepath.Join(t.TempDir(), "target")

	rec := &recorder{Desktop: desktop.New()}
	c := New(core.Single(rec), WithoutTar())

	require.NoError(t, c.CopyRecursively(ctx, core.Local(src), core.Local(dst)))
	assert.Empty(t, rec.started)
	assert.FileExists(t, filepath.Join(dst, "one", "two", "b.bin"))
}

func TestCopyRecursivelyPreconditions(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	c := New(core.Single(desktop.New()))
	err := c.CopyRecursively(ctx, core.Local(file), core.Local(t.TempDir()))
	require.Error(t, err)
	assert.Equal(t, perrors.CodeInvalidInput, perrors.GetCode(err))
	assert.Contains(t, err.Error(), "it is not a directory")
}
