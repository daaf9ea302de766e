// Package engine routes file names of the local filesystem view to the
// engine that serves them.
//
// The view adds one synthetic directory, core.DeviceRoot, to the local
// root. Below it every registered scheme appears as a directory listing
// the roots of its known devices, and every path below a device root is
// served by that device's backend:
//
//	/                         local root with __devices__ injected
//	/__devices__              one entry per registered scheme
//	/__devices__/ssh          ssh://host/ for every known ssh host
//	/__devices__/ssh/host/etc ssh://host/etc
//
// Resource names starting with ':' and every other local path are not
// handled and go to native filesystem access. A Handler keeps no state of
// its own; schemes and device roots are read from its Registry on every
// call.
package engine
