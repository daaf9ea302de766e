// Package core provides the types and the operation contract shared by every
// device file-access backend.
//
// A device is addressed by a Path carrying a scheme, a host and a POSIX path.
// The empty scheme denotes the local machine. Each backend implements Access
// for one class of device and a Router selects the backend for a Path by its
// scheme.
//
// # Design Philosophy
//
//   - One contract: identical operations run against the local desktop and
//     against hosts reachable only through a shell.
//   - Branch-free queries: Exists, IsFile and friends never fail; they report
//     false for anything they cannot confirm.
//   - Explicit unsupported operations: backends embed Unsupported and
//     override what they implement. Everything else returns an error wrapping
//     ErrUnsupported.
//
// # Usage Example
//
//	router := core.NewRouter(desktop.New())
//	router.Register("ssh", func(host string) (core.Access, error) {
//	    return shell.New(shell.NewSSHRunner(host)), nil
//	})
//
//	p, _ := core.ParsePath("ssh://build-host/var/log")
//	access, err := router.Resolve(p)
//	if err != nil {
//	    return err
//	}
//
//	err = access.IterateDirectory(ctx, p, core.Filter{NameFilters: []string{"*.log"}},
//	    core.PathCallback(func(entry core.Path) core.IterationPolicy {
//	        fmt.Println(entry)
//	        return core.Continue
//	    }))
//
// # Error Handling
//
// Fallible operations return errors built with the errors package of this
// module. Their messages are already formatted for display. Use
// errors.GetCode to branch on the kind of failure and errors.Is with
// ErrUnsupported to detect operations a backend does not provide.
package core
