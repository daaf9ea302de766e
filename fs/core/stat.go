package core

import "time"

// FileFlags describes the kind of a file and carries its permission bits in
// the low twelve bits.
type FileFlags uint32

const (
	FlagDirectory FileFlags = 1 << (16 + iota)
	FlagFile
	FlagSymlink
	FlagHidden
	FlagBundle
	FlagRoot
	FlagExists
	FlagLocalDisk

	flagPermissionMask FileFlags = 0xfff
)

// StatInfo is the result of a metadata query. It is produced fresh on every
// call and never cached.
type StatInfo struct {
	// Size in bytes, or -1 if unknown.
	Size         int64
	LastModified time.Time
	Flags        FileFlags
}

// Permissions returns the permission bits stored in Flags.
func (s StatInfo) Permissions() Permissions {
	return Permissions(s.Flags & flagPermissionMask)
}

// WithPermissions returns Flags with the permission bits replaced.
func (f FileFlags) WithPermissions(p Permissions) FileFlags {
	return f&^flagPermissionMask | FileFlags(p&permissionMask)
}

func (s StatInfo) Exists() bool      { return s.Flags&FlagExists != 0 }
func (s StatInfo) IsDirectory() bool { return s.Flags&FlagDirectory != 0 }
func (s StatInfo) IsFile() bool      { return s.Flags&FlagFile != 0 }
func (s StatInfo) IsSymlink() bool   { return s.Flags&FlagSymlink != 0 }
func (s StatInfo) IsHidden() bool    { return s.Flags&FlagHidden != 0 }
func (s StatInfo) IsBundle() bool    { return s.Flags&FlagBundle != 0 }
func (s StatInfo) IsRoot() bool      { return s.Flags&FlagRoot != 0 }

// OSType identifies the operating system family of a device.
type OSType int

const (
	OSUnknown OSType = iota
	OSLinux
	OSMac
	OSOtherUnix
	OSWindows
)

// String returns a string representation of the OSType.
func (o OSType) String() string {
	switch o {
	case OSLinux:
		return "linux"
	case OSMac:
		return "darwin"
	case OSOtherUnix:
		return "unix"
	case OSWindows:
		return "windows"
	default:
		return "unknown"
	}
}
