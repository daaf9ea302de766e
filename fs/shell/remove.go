package shell

import (
	"context"
	"path"
	"strings"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/exec"
	"github.com/jmgilman/devaccess/fs/core"
)

// RemoveRecursively runs rm -rf on p once the path is deep enough to be a
// build directory or similar. Shallow paths are refused without a round
// trip.
func (s *Shell) RemoveRecursively(ctx context.Context, p core.Path) error {
	if !p.IsAbsolute() {
		return perrors.Newf(perrors.CodeInvalidInput, "Refusing to remove relative path %q", p.Path)
	}

	clean := path.Clean(p.Path)
	if need := s.depths.required(clean); strings.Count(clean, "/") < need {
		s.logger.Warn("refusing recursive remove", "path", clean, "depth", strings.Count(clean, "/"), "required", need)
		return perrors.WithPath(
			perrors.Newf(perrors.CodeForbidden, "Refusing to remove %q, the path is too close to the root.", clean),
			clean)
	}

	_, err := s.check(ctx, exec.NewCommandLine("rm", "-rf", "--", clean), nil, "Failed to remove %q", clean)
	return err
}

// required returns the minimum slash count for a cleaned absolute path.
func (d RemoveDepths) required(clean string) int {
	switch {
	case strings.HasPrefix(clean, "/tmp/"):
		return d.Tmp
	case strings.HasPrefix(clean, "/home/"):
		return d.Home
	default:
		return d.Default
	}
}
