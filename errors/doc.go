// Package errors provides the structured error values returned by every
// fallible device file operation.
//
// Each error carries a code, a retry classification, a message that is
// already formatted for display, optional context (path, command, exit
// code) and the wrapped cause. Errors stay compatible with the standard
// library (errors.Is, errors.As, errors.Unwrap).
//
// Creating errors:
//
//	err := errors.Newf(errors.CodeNotFound, "file %q does not exist", path)
//
// Wrapping a failed shell round trip, classifying it from its stderr:
//
//	if res.ExitCode != 0 {
//	    return errors.FromStderr(res.Stderr, "failed to copy %q to %q", src, dst)
//	}
//
// Rendering for a CLI or API:
//
//	resp := errors.ToJSON(err)
package errors
