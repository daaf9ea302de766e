package core

import (
	"context"
	"sort"
	"testing"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyTree(t *testing.T) {
	ctx := context.Background()
	m := newMemAccess()
	m.write("/src/a.txt", "a")
	m.write("/src/sub/b.txt", "b")
	m.write("/src/sub/deeper/c.txt", "c")

	r := Single(m)
	src, dst := Local("/src"), Local("/dst")

	require.NoError(t, CheckCopyRecursively(ctx, r, src, dst))
	require.NoError(t, CopyTree(ctx, r, src, dst))

	got := memPaths(m, "/dst")
	sort.Strings(got)
	assert.Equal(t, []string{"a.txt", "sub/b.txt", "sub/deeper/c.txt"}, got)

	data, err := m.ReadFile(ctx, Local("/dst/sub/deeper/c.txt"), -1, 0)
	require.NoError(t, err)
	assert.Equal(t, "c", string(data))
}

func TestCheckCopyRecursivelyRejectsFile(t *testing.T) {
	ctx := context.Background()
	m := newMemAccess()
	m.write("/file", "x")

	err := CheckCopyRecursively(ctx, Single(m), Local("/file"), Local("/dst"))
	require.Error(t, err)
	assert.Equal(t, perrors.CodeInvalidInput, perrors.GetCode(err))
	assert.Contains(t, err.Error(), "Cannot copy from /file, it is not a directory.")
}

func TestCopyTreeStopsOnFirstFailure(t *testing.T) {
	ctx := context.Background()
	m := newMemAccess()
	m.write("/src/a.txt", "a")
	m.write("/src/b.txt", "b")
	// A file where the destination directory should be makes every copy fail.
	m.write("/dst", "blocker")

	err := CopyTree(ctx, Single(m), Local("/src"), Local("/dst"))
	require.Error(t, err)
	assert.Equal(t, perrors.CodeExecutionFailed, perrors.GetCode(err))
	assert.Contains(t, err.Error(), "Could not create directory /dst")
	assert.Equal(t, 0, m.copies)
}

func TestCopyFileAcrossDevices(t *testing.T) {
	ctx := context.Background()
	local := newMemAccess()
	remote := newMemAccess()
	local.write("/a.txt", "payload")

	router := NewRouter(local)
	router.Register("ssh", func(string) (Access, error) { return remote, nil })

	dst := Path{Scheme: "ssh", Host: "h", Path: "/b.txt"}
	require.NoError(t, CopyFile(ctx, router, Local("/a.txt"), dst))
	assert.Equal(t, 0, local.copies)

	data, err := remote.ReadFile(ctx, dst, -1, 0)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	// Same device delegates to the device's own copy.
	require.NoError(t, CopyFile(ctx, router, Local("/a.txt"), Local("/c.txt")))
	assert.Equal(t, 1, local.copies)
}

func TestAsyncHelpers(t *testing.T) {
	ctx := context.Background()
	m := newMemAccess()

	var order []string
	AsyncWriteFile(ctx, m, Local("/x"), []byte("hello"), 0, func(n int64, err error) {
		require.NoError(t, err)
		assert.Equal(t, int64(5), n)
		order = append(order, "write")
	})
	AsyncReadFile(ctx, m, Local("/x"), 3, 1, func(data []byte, err error) {
		require.NoError(t, err)
		assert.Equal(t, "ell", string(data))
		order = append(order, "read")
	})
	AsyncCopyFile(ctx, Single(m), Local("/x"), Local("/y"), func(err error) {
		require.NoError(t, err)
		order = append(order, "copy")
	})

	assert.Equal(t, []string{"write", "read", "copy"}, order)
}

func TestEntries(t *testing.T) {
	ctx := context.Background()
	m := newMemAccess()
	m.write("/d/a.txt", "a")
	m.write("/d/b.log", "b")
	m.write("/d/c.txt", "c")

	var names []string
	for e, err := range Entries(ctx, m, Local("/d"), Filter{NameFilters: []string{"*.txt"}}) {
		require.NoError(t, err)
		names = append(names, e.Path.Base())
	}
	sort.Strings(names)
	assert.Equal(t, []string{"a.txt", "c.txt"}, names)

	count := 0
	for range Entries(ctx, m, Local("/d"), Filter{}) {
		count++
		break
	}
	assert.Equal(t, 1, count)

	var gotErr error
	for _, err := range Entries(ctx, Unsupported{}, Local("/d"), Filter{}) {
		gotErr = err
	}
	assert.ErrorIs(t, gotErr, ErrUnsupported)
}

func TestFilterKinds(t *testing.T) {
	assert.True(t, Filter{}.WantsFiles())
	assert.True(t, Filter{}.WantsDirs())
	assert.True(t, Filter{Flags: FilterFiles}.WantsFiles())
	assert.False(t, Filter{Flags: FilterFiles}.WantsDirs())
	assert.False(t, Filter{Flags: FilterDirs}.WantsFiles())
	assert.True(t, Filter{Flags: FilterFiles | FilterNoSymlinks}.Structural())
	assert.False(t, Filter{Flags: FilterHidden | FilterNoDotAndDotDot}.Structural())
}
