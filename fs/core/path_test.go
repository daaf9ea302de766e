package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Path
	}{
		{name: "local", in: "/tmp/a", want: Path{Path: "/tmp/a"}},
		{name: "url", in: "ssh://user@host/var/log", want: Path{Scheme: "ssh", Host: "user@host", Path: "/var/log"}},
		{name: "url root", in: "docker://box", want: Path{Scheme: "docker", Host: "box", Path: "/"}},
		{name: "device path", in: "/__devices__/ssh/host/etc/hosts", want: Path{Scheme: "ssh", Host: "host", Path: "/etc/hosts"}},
		{name: "device root", in: "/__devices__/ssh/host", want: Path{Scheme: "ssh", Host: "host", Path: "/"}},
		{name: "scheme listing", in: "/__devices__/ssh", want: Path{Path: "/__devices__/ssh"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParsePath("://host/x")
	assert.Error(t, err)
	_, err = ParsePath("ssh:///x")
	assert.Error(t, err)
}

func TestPathRendering(t *testing.T) {
	p := Path{Scheme: "ssh", Host: "h", Path: "/a/b"}

	assert.Equal(t, "ssh://h/a/b", p.String())
	assert.Equal(t, "/__devices__/ssh/h/a/b", p.DevicePath())
	assert.True(t, p.NeedsDevice())
	assert.False(t, Local("/a").NeedsDevice())
	assert.Equal(t, "/a", Local("/a").DevicePath())
}

func TestPathOperations(t *testing.T) {
	p := Path{Scheme: "ssh", Host: "h", Path: "/a/b"}

	assert.Equal(t, "/a/b/c/d", p.Join("c", "d").Path)
	assert.Equal(t, "/a", p.Parent().Path)
	assert.Equal(t, "b", p.Base())
	assert.Equal(t, "ssh", p.Parent().Scheme)
	assert.Equal(t, "/x", p.WithPath("/x").Path)
	assert.Equal(t, "/a", p.WithPath("/a/./b/..").Clean().Path)
	assert.True(t, p.IsAbsolute())
	assert.False(t, Local("rel").IsAbsolute())
	assert.True(t, Local("/").IsRoot())
}

func TestRelativeTo(t *testing.T) {
	base := Path{Scheme: "ssh", Host: "h", Path: "/src"}

	rel, ok := base.Join("sub/a.txt").RelativeTo(base)
	assert.True(t, ok)
	assert.Equal(t, "sub/a.txt", rel)

	rel, ok = base.RelativeTo(base)
	assert.True(t, ok)
	assert.Equal(t, ".", rel)

	_, ok = base.WithPath("/srcfoo/a").RelativeTo(base)
	assert.False(t, ok)

	_, ok = Local("/src/a").RelativeTo(base)
	assert.False(t, ok)

	rel, ok = Local("/etc/hosts").RelativeTo(Local("/"))
	assert.True(t, ok)
	assert.Equal(t, "etc/hosts", rel)
}

func TestIsVirtual(t *testing.T) {
	assert.True(t, Local(":/resources/x").IsVirtual())
	assert.True(t, Local(DeviceRoot).IsVirtual())
	assert.True(t, Local(DeviceRoot+"/ssh").IsVirtual())
	assert.False(t, Local("/tmp").IsVirtual())
	assert.False(t, Path{Scheme: "ssh", Host: "h", Path: "/tmp"}.IsVirtual())
}
