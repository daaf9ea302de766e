//go:build !unix

package desktop

import "os"

const (
	accessRead    = 0o4
	accessWrite   = 0o2
	accessExecute = 0o1
)

// access approximates access(2) from the owner permission bits.
func access(name string, mode uint32) bool {
	fi, err := os.Stat(name)
	if err != nil {
		return false
	}
	return uint32(fi.Mode().Perm()>>6)&mode == mode
}

func fileID(string) string {
	return ""
}

func bytesAvailable(string) int64 {
	return -1
}
