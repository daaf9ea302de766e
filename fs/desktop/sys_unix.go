//go:build unix

package desktop

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const (
	accessRead    = unix.R_OK
	accessWrite   = unix.W_OK
	accessExecute = unix.X_OK
)

func access(name string, mode uint32) bool {
	return unix.Access(name, mode) == nil
}

func fileID(name string) string {
	var st unix.Stat_t
	if err := unix.Stat(name, &st); err != nil {
		return ""
	}
	return fmt.Sprintf("%x:%d", uint64(st.Dev), uint64(st.Ino))
}

func bytesAvailable(name string) int64 {
	var st unix.Statfs_t
	if err := unix.Statfs(name, &st); err != nil {
		return -1
	}
	return int64(uint64(st.Bavail) * uint64(st.Bsize))
}
