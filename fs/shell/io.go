package shell

import (
	"context"
	"strconv"
	"strings"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/exec"
	"github.com/jmgilman/devaccess/fs/core"
)

// maxBlock caps the dd block size.
const maxBlock = 64 * 1024

// ReadFile reads with dd. Offset and limit are expressed in blocks of their
// greatest common divisor.
func (s *Shell) ReadFile(ctx context.Context, p core.Path, limit, offset int64) ([]byte, error) {
	if limit == 0 {
		return []byte{}, nil
	}

	cmd := exec.NewCommandLine("dd", "if="+p.Path)
	if limit > 0 || offset > 0 {
		bs := gcd(max(limit, 0), offset)
		if bs > maxBlock {
			bs = gcd(bs, maxBlock)
		}
		cmd = cmd.AddArg("bs=" + strconv.FormatInt(bs, 10))
		if limit > 0 {
			cmd = cmd.AddArg("count=" + strconv.FormatInt(limit/bs, 10))
		}
		if offset > 0 {
			cmd = cmd.AddArg("skip=" + strconv.FormatInt(offset/bs, 10))
		}
	}

	res, err := s.check(ctx, cmd, nil, "Failed reading file %q", p.Path)
	if err != nil {
		return nil, err
	}
	if res.Stdout == nil {
		return []byte{}, nil
	}
	return res.Stdout, nil
}

// WriteFile feeds data to dd. dd truncates the file at the seek position,
// so bytes before offset survive and nothing follows the written range.
func (s *Shell) WriteFile(ctx context.Context, p core.Path, data []byte, offset int64) (int64, error) {
	cmd := exec.NewCommandLine("dd", "of="+p.Path)
	if offset != 0 {
		cmd = cmd.AddArgs("bs=1", "seek="+strconv.FormatInt(offset, 10))
	}
	if data == nil {
		data = []byte{}
	}
	if _, err := s.check(ctx, cmd, data, "Failed writing file %q", p.Path); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// CreateTempFile uses mktemp when the device has it. Otherwise it tries
// random names until one does not exist and creates it with an empty write.
func (s *Shell) CreateTempFile(ctx context.Context, template core.Path) (core.Path, error) {
	tmpl := core.TempTemplate(template)

	hasMktemp := s.mktemp.resolve(func() bool {
		ok := s.succeeds(ctx, exec.NewCommandLine("command", "-v", "mktemp"))
		if !ok {
			s.logger.Info("mktemp is not available, creating temporary files by hand",
				"device", template.WithPath("/").String())
		}
		return ok
	})

	if hasMktemp {
		res, err := s.check(ctx, exec.NewCommandLine("mktemp", tmpl.Path), nil,
			"Failed creating temporary file %q", template.Path)
		if err != nil {
			return core.Path{}, err
		}
		return template.WithPath(strings.TrimSpace(string(res.Stdout))), nil
	}

	for range s.maxTries {
		candidate, err := core.RandomizeTemplate(tmpl)
		if err != nil {
			return core.Path{}, perrors.Wrapf(err, perrors.CodeInternal,
				"Failed creating temporary file %q", template.Path)
		}
		if s.Exists(ctx, candidate) {
			continue
		}
		if _, err := s.WriteFile(ctx, candidate, nil, 0); err != nil {
			return core.Path{}, err
		}
		return candidate, nil
	}

	return core.Path{}, perrors.Newf(perrors.CodeConflict,
		"Failed creating temporary file %q (too many tries)", template.Path)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
