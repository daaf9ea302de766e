package core

import (
	"context"

	perrors "github.com/jmgilman/devaccess/errors"
)

// CopyFile copies a single file from src to dst. Files on the same device
// are copied by the device itself; otherwise the content is read from src
// and written to dst.
func CopyFile(ctx context.Context, r Resolver, src, dst Path) error {
	sa, err := r.Resolve(src)
	if err != nil {
		return err
	}
	if src.SameDevice(dst) {
		return sa.CopyFile(ctx, src, dst)
	}

	da, err := r.Resolve(dst)
	if err != nil {
		return err
	}

	data, err := sa.ReadFile(ctx, src, -1, 0)
	if err != nil {
		return err
	}
	if _, err := da.WriteFile(ctx, dst, data, 0); err != nil {
		return err
	}
	return nil
}

// CheckCopyRecursively verifies the preconditions of a recursive copy: src
// must be a directory and dst must be, or become, a writable directory.
func CheckCopyRecursively(ctx context.Context, r Resolver, src, dst Path) error {
	sa, err := r.Resolve(src)
	if err != nil {
		return err
	}
	if !sa.IsDirectory(ctx, src) {
		return perrors.Newf(perrors.CodeInvalidInput,
			"Cannot copy from %s, it is not a directory.", src)
	}

	da, err := r.Resolve(dst)
	if err != nil {
		return err
	}
	if err := da.EnsureWritableDirectory(ctx, dst); err != nil {
		return perrors.Wrapf(err, perrors.CodeForbidden,
			"Cannot copy %s to %s, it is not a writable directory.", src, dst)
	}
	return nil
}

// CopyTree copies every file below src to the same relative location below
// dst, one file at a time. Parent directories are created as needed. The
// first failure stops the copy and is returned; files copied before it stay
// in place.
//
// Empty directories are not reproduced.
func CopyTree(ctx context.Context, r Resolver, src, dst Path) error {
	sa, err := r.Resolve(src)
	if err != nil {
		return err
	}
	da, err := r.Resolve(dst)
	if err != nil {
		return err
	}

	var copyErr error
	filter := Filter{
		NameFilters: []string{"*"},
		Flags:       FilterFiles | FilterNoDotAndDotDot,
		Recursive:   true,
	}

	iterErr := sa.IterateDirectory(ctx, src, filter, PathCallback(func(entry Path) IterationPolicy {
		rel, ok := entry.RelativeTo(src)
		if !ok {
			copyErr = perrors.Newf(perrors.CodeInternal, "Entry %s is not below %s", entry, src)
			return Stop
		}
		target := dst.Join(rel)

		if err := da.EnsureWritableDirectory(ctx, target.Parent()); err != nil {
			copyErr = perrors.Wrapf(err, perrors.CodeExecutionFailed,
				"Could not create directory %s", target.Parent())
			return Stop
		}

		if err := CopyFile(ctx, r, entry, target); err != nil {
			copyErr = perrors.Wrapf(err, perrors.CodeExecutionFailed,
				"Failed to copy %s to %s", entry, target)
			return Stop
		}
		return Continue
	}))

	if copyErr != nil {
		return copyErr
	}
	return iterErr
}
