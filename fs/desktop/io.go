package desktop

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/fs/core"
)

// ReadFile returns up to limit bytes of p starting at offset. A negative
// limit reads to the end of the file.
func (d *Desktop) ReadFile(ctx context.Context, p core.Path, limit, offset int64) ([]byte, error) {
	if !p.IsAbsolute() {
		return nil, notAbsolute("readFile", p)
	}
	if limit == 0 {
		return []byte{}, nil
	}
	if !d.Exists(ctx, p) {
		return nil, perrors.Newf(perrors.CodeNotFound, "File %q does not exist", p.Path)
	}

	f, err := d.fs.Open(p.Path)
	if err != nil {
		return nil, wrapFS(err, "Could not open file %q", p.Path)
	}
	defer f.Close()

	if offset != 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			return nil, wrapFS(err, "Cannot seek in %q", p.Path)
		}
	}

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapFS(err, "Cannot read %q", p.Path)
	}
	return data, nil
}

// WriteFile keeps the bytes before offset and truncates the file at the end
// of the written range.
func (d *Desktop) WriteFile(_ context.Context, p core.Path, data []byte, offset int64) (int64, error) {
	if !p.IsAbsolute() {
		return 0, notAbsolute("writeFile", p)
	}
	f, err := d.fs.OpenFile(p.Path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return 0, wrapFS(err, "Could not open file %q for writing", p.Path)
	}
	defer f.Close()

	if err := f.Truncate(offset); err != nil {
		return 0, wrapFS(err, "Could not open file %q for writing", p.Path)
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return 0, wrapFS(err, "Cannot seek in %q", p.Path)
	}

	n, err := f.Write(data)
	if err != nil {
		return int64(n), wrapFS(err, "Could not write to file %q (only %d of %d bytes written)",
			p.Path, n, len(data))
	}
	return int64(n), wrapFS(f.Close(), "Could not write to file %q", p.Path)
}

// CopyFile copies the content and mode of src over dst. Both must be on the
// same device; core.CopyFile handles copies between devices.
func (d *Desktop) CopyFile(_ context.Context, src, dst core.Path) error {
	if err := sameDeviceAbsolute("copy", src, dst); err != nil {
		return err
	}
	fail := func(err error) error {
		return wrapFS(err, "Failed to copy file %q to %q", src.Path, dst.Path)
	}

	fi, err := d.fs.Stat(src.Path)
	if err != nil {
		return fail(err)
	}
	if fi.IsDir() {
		return perrors.Newf(perrors.CodeInvalidInput, "Failed to copy file %q to %q: source is a directory", src.Path, dst.Path)
	}

	in, err := d.fs.Open(src.Path)
	if err != nil {
		return fail(err)
	}
	defer in.Close()

	out, err := d.fs.OpenFile(dst.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return fail(err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fail(err)
	}
	if err := out.Close(); err != nil {
		return fail(err)
	}
	return fail(os.Chmod(dst.Path, fi.Mode().Perm()))
}

// CreateTempFile creates the file exclusively, retrying with a fresh random
// name while the candidate exists.
func (d *Desktop) CreateTempFile(_ context.Context, template core.Path) (core.Path, error) {
	if !template.IsAbsolute() {
		return core.Path{}, notAbsolute("createTempFile", template)
	}
	tmpl := core.TempTemplate(template)

	for i := 0; i < d.maxTries; i++ {
		candidate, err := core.RandomizeTemplate(tmpl)
		if err != nil {
			return core.Path{}, perrors.Wrapf(err, perrors.CodeInternal,
				"Could not create temporary file in %q", template.Path)
		}

		f, err := d.fs.OpenFile(candidate.Path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return core.Path{}, wrapFS(err, "Could not create temporary file in %q", template.Path)
		}
		if err := f.Close(); err != nil {
			return core.Path{}, wrapFS(err, "Could not create temporary file in %q", template.Path)
		}
		return candidate, nil
	}

	return core.Path{}, perrors.Newf(perrors.CodeConflict,
		"Failed creating temporary file %q (too many tries)", template.Path)
}
