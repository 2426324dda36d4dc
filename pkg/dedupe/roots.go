package dedupe

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dedupe/pkg/errors"
	"github.com/arthur-debert/dedupe/pkg/types"
)

// Root is a validated root directory and its priority.
type Root struct {
	Path     string
	Priority int
}

// ValidateRoots turns command-line paths into ranked roots. Every path must
// be a directory holding a manifest named manifestName; paths are made
// absolute and symlinks resolved so the same tree cannot be listed twice.
// Roots may not contain one another.
func ValidateRoots(fsys types.FS, paths []string, manifestName string) ([]Root, error) {
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrInvalidArgument, "at least one root is required")
	}

	seen := make(map[string]int, len(paths))
	roots := make([]Root, 0, len(paths))
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidArgument, "invalid root %q", p)
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil, errors.Newf(errors.ErrInvalidArgument, "root %s does not exist", abs).
					WithDetail("root", abs)
			}
			return nil, errors.Wrapf(err, errors.ErrInvalidArgument, "cannot resolve root %s", abs)
		}

		info, err := fsys.Stat(resolved)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidArgument, "cannot stat root %s", resolved)
		}
		if !info.IsDir() {
			return nil, errors.Newf(errors.ErrInvalidArgument, "root %s is not a directory", resolved).
				WithDetail("root", resolved)
		}

		manifest := filepath.Join(resolved, manifestName)
		if info, err := fsys.Stat(manifest); err != nil || !info.Mode().IsRegular() {
			return nil, errors.Newf(errors.ErrInvalidArgument, "root %s has no manifest %s", resolved, manifestName).
				WithDetail("root", resolved).
				WithDetail("manifest", manifest)
		}

		if prev, dup := seen[resolved]; dup {
			return nil, errors.Newf(errors.ErrInvalidArgument, "root %s is listed twice (positions %d and %d)", resolved, prev+1, i+1).
				WithDetail("root", resolved)
		}
		seen[resolved] = i

		for _, other := range roots {
			if nested(other.Path, resolved) || nested(resolved, other.Path) {
				return nil, errors.Newf(errors.ErrInvalidArgument, "roots %s and %s overlap (positions %d and %d)", other.Path, resolved, other.Priority+1, i+1).
					WithDetail("root", resolved).
					WithDetail("overlaps", other.Path)
			}
		}

		roots = append(roots, Root{Path: resolved, Priority: i})
	}
	return roots, nil
}

// nested reports whether path lies inside dir.
func nested(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
