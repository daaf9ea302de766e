package core

import (
	"io/fs"
	"strconv"
)

// Permissions holds the nine POSIX permission flags. Each class occupies one
// hexadecimal digit, so the hexadecimal rendering of a value reads like the
// octal mode it stands for (ReadOwner|WriteOwner|ReadGroup|ReadOther is
// 0x644).
type Permissions uint16

const (
	ExeOther   Permissions = 0x001
	WriteOther Permissions = 0x002
	ReadOther  Permissions = 0x004
	ExeGroup   Permissions = 0x010
	WriteGroup Permissions = 0x020
	ReadGroup  Permissions = 0x040
	ExeOwner   Permissions = 0x100
	WriteOwner Permissions = 0x200
	ReadOwner  Permissions = 0x400

	permissionMask = 0x777
)

var permissionBits = [9]Permissions{
	ExeOther, WriteOther, ReadOther,
	ExeGroup, WriteGroup, ReadGroup,
	ExeOwner, WriteOwner, ReadOwner,
}

// PermissionsFromMode decodes the low nine bits of a POSIX mode.
func PermissionsFromMode(mode uint32) Permissions {
	var p Permissions
	for i, flag := range permissionBits {
		if mode&(1<<i) != 0 {
			p |= flag
		}
	}
	return p
}

// ParsePermissions decodes an octal mode string such as "644" or "100755".
func ParsePermissions(s string) (Permissions, error) {
	mode, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, err
	}
	return PermissionsFromMode(uint32(mode)), nil
}

// Mode returns the POSIX mode bits.
func (p Permissions) Mode() fs.FileMode {
	var mode fs.FileMode
	for i, flag := range permissionBits {
		if p&flag != 0 {
			mode |= 1 << i
		}
	}
	return mode
}

// ChmodArg renders the value for chmod. The flag integer is written in
// hexadecimal, which chmod reads as the equivalent octal mode.
func (p Permissions) ChmodArg() string {
	return strconv.FormatUint(uint64(p&permissionMask), 16)
}

// String renders the permissions in ls style, e.g. "rwxr-x---".
func (p Permissions) String() string {
	const symbols = "xwr"
	out := make([]byte, 9)
	for i, flag := range permissionBits {
		c := byte('-')
		if p&flag != 0 {
			c = symbols[i%3]
		}
		out[8-i] = c
	}
	return string(out)
}
