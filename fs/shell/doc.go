// Package shell implements core.Access for Unix devices that are reached
// through a command shell, such as a remote host over ssh or a container
// through docker exec.
//
// Every operation is a single command line handed to a Runner:
//
//	s := shell.New(shell.NewSSHRunner("user@build-box", nil))
//	p := core.Path{Scheme: "ssh", Host: "user@build-box", Path: "/srv/out/app.log"}
//	data, err := s.ReadFile(ctx, p, -1, 0)
//
// # Utilities
//
// The backend only relies on POSIX utilities: test, stat, ls, dd, rm, mkdir,
// mv, cp, chmod, readlink, df, env and uname. find, mktemp and tar are used
// when present. The first time find or mktemp turns out to be missing the
// backend stops trying them for its lifetime and falls back to ls and
// random candidate names.
//
// stat format strings differ between GNU and BSD systems; the variant is
// picked from "uname -s", asked once per backend.
//
// # Safety
//
// RemoveRecursively refuses paths with too few components (see
// RemoveDepths) before anything is sent to the device.
//
// # Thread Safety
//
// A Shell is safe for concurrent use. Each operation is an independent
// round trip; the cached capabilities are guarded by mutexes.
package shell
