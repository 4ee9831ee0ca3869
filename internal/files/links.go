// Package files holds the on-disk helpers behind the settings file and the
// CLI log file: link-safe path checks, private directories and replace-by-
// rename writes.
package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrLinkedPath is matched by every *LinkError.
var ErrLinkedPath = errors.New("path goes through a link")

// LinkError reports the first path component that is a symlink or a
// Windows reparse point.
type LinkError struct {
	Path    string
	At      string
	Reparse bool
}

func (e *LinkError) Error() string {
	kind := "symlink"
	if e.Reparse {
		kind = "reparse point"
	}
	return fmt.Sprintf("refusing to use %s: %s at %s", e.Path, kind, e.At)
}

func (e *LinkError) Is(target error) bool { return target == ErrLinkedPath }

// CheckPath fails when path, or any directory above it, is a link.
// Components that do not exist yet are fine.
func CheckPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	for _, p := range ancestors(abs) {
		info, err := os.Lstat(p)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("inspect %s: %w", p, err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return &LinkError{Path: abs, At: p}
		}
		reparse, err := isReparsePoint(p)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", p, err)
		}
		if reparse {
			return &LinkError{Path: abs, At: p, Reparse: true}
		}
	}
	return nil
}

// ancestors lists abs and its parents from the top down, without the root.
func ancestors(abs string) []string {
	var out []string
	for p := filepath.Clean(abs); ; {
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		out = append(out, p)
		p = parent
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
