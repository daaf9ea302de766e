package core

import (
	"context"
	"errors"
	"testing"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterResolve(t *testing.T) {
	local := newMemAccess()
	router := NewRouter(local)

	created := 0
	router.Register("ssh", func(host string) (Access, error) {
		created++
		return newMemAccess(), nil
	})

	a, err := router.Resolve(Local("/tmp"))
	require.NoError(t, err)
	assert.Same(t, local, a)

	p := Path{Scheme: "ssh", Host: "h1", Path: "/"}
	first, err := router.Resolve(p)
	require.NoError(t, err)
	second, err := router.Resolve(p.Join("x"))
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, created)

	_, err = router.Resolve(Path{Scheme: "ssh", Host: "h2", Path: "/"})
	require.NoError(t, err)
	assert.Equal(t, 2, created)
}

func TestRouterUnknownScheme(t *testing.T) {
	router := NewRouter(newMemAccess())

	_, err := router.Resolve(Path{Scheme: "ftp", Host: "h", Path: "/"})
	require.Error(t, err)
	assert.Equal(t, perrors.CodeNotFound, perrors.GetCode(err))
}

func TestRouterFactoryError(t *testing.T) {
	router := NewRouter(newMemAccess())
	boom := errors.New("unreachable")
	router.Register("ssh", func(string) (Access, error) { return nil, boom })

	_, err := router.Resolve(Path{Scheme: "ssh", Host: "h", Path: "/"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, router.DeviceRoots("ssh"))
}

func TestRouterListing(t *testing.T) {
	router := NewRouter(newMemAccess())
	router.Register("ssh", func(string) (Access, error) { return newMemAccess(), nil })
	router.Register("docker", func(string) (Access, error) { return newMemAccess(), nil })
	router.AddHost("ssh", "zeta")
	_, err := router.Resolve(Path{Scheme: "ssh", Host: "alpha", Path: "/x"})
	require.NoError(t, err)

	assert.Equal(t, []string{"docker", "ssh"}, router.Schemes())
	assert.True(t, router.HasScheme("ssh"))
	assert.False(t, router.HasScheme("ftp"))
	assert.Equal(t, []Path{
		{Scheme: "ssh", Host: "alpha", Path: "/"},
		{Scheme: "ssh", Host: "zeta", Path: "/"},
	}, router.DeviceRoots("ssh"))
	assert.Empty(t, router.DeviceRoots("docker"))
}

func TestUnsupportedDefaults(t *testing.T) {
	ctx := context.Background()
	var a Access = Unsupported{}
	p := Path{Scheme: "ssh", Host: "h", Path: "/x"}

	assert.False(t, a.Exists(ctx, p))
	assert.False(t, a.IsDirectory(ctx, p))
	assert.Equal(t, int64(-1), a.FileSize(ctx, p))
	assert.Equal(t, int64(-1), a.BytesAvailable(ctx, p))
	assert.Empty(t, a.FileID(ctx, p))
	assert.False(t, a.Stat(ctx, p).Exists())

	err := a.CopyFile(ctx, p, p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, perrors.CodeNotImplemented, perrors.GetCode(err))
	assert.Contains(t, err.Error(), "copyFile is not implemented for ssh://h/x")

	_, err = a.ReadFile(ctx, p, -1, 0)
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.ErrorIs(t, a.IterateDirectory(ctx, p, Filter{}, PathCallback(nil)), ErrUnsupported)
}
