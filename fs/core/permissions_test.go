package core

import (
	"io/fs"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionsRoundTrip(t *testing.T) {
	// Every one of the 512 combinations survives mode -> flags -> chmod
	// argument -> mode.
	for mode := uint32(0); mode < 0o1000; mode++ {
		p := PermissionsFromMode(mode)
		assert.Equal(t, fs.FileMode(mode), p.Mode(), "mode %o", mode)

		parsed, err := strconv.ParseUint(p.ChmodArg(), 8, 32)
		require.NoError(t, err, "chmod argument %q for mode %o", p.ChmodArg(), mode)
		assert.Equal(t, uint64(mode), parsed, "mode %o", mode)

		back, err := ParsePermissions(strconv.FormatUint(uint64(mode), 8))
		require.NoError(t, err)
		assert.Equal(t, p, back)
	}
}

func TestPermissionsBitMapping(t *testing.T) {
	tests := []struct {
		mode uint32
		want Permissions
	}{
		{0o001, ExeOther},
		{0o002, WriteOther},
		{0o004, ReadOther},
		{0o010, ExeGroup},
		{0o020, WriteGroup},
		{0o040, ReadGroup},
		{0o100, ExeOwner},
		{0o200, WriteOwner},
		{0o400, ReadOwner},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PermissionsFromMode(tt.mode), "mode %o", tt.mode)
	}
}

func TestParsePermissions(t *testing.T) {
	p, err := ParsePermissions("100644")
	require.NoError(t, err)
	assert.Equal(t, ReadOwner|WriteOwner|ReadGroup|ReadOther, p)
	assert.Equal(t, "644", p.ChmodArg())
	assert.Equal(t, "rw-r--r--", p.String())

	_, err = ParsePermissions("rwx")
	assert.Error(t, err)
}

func TestStatInfoFlags(t *testing.T) {
	perms := ReadOwner | ExeOwner
	info := StatInfo{Flags: (FlagDirectory | FlagExists).WithPermissions(perms)}

	assert.True(t, info.IsDirectory())
	assert.True(t, info.Exists())
	assert.False(t, info.IsFile())
	assert.False(t, info.IsSymlink())
	assert.Equal(t, perms, info.Permissions())

	info.Flags = info.Flags.WithPermissions(0)
	assert.Equal(t, Permissions(0), info.Permissions())
	assert.True(t, info.IsDirectory())
}
