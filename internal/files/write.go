package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lexread/lexread/internal/logger"
)

const tempPattern = ".lexread-*.tmp"

// MkdirPrivate creates dir and its parents with 0700 permissions.
func MkdirPrivate(dir string) error {
	if err := CheckPath(dir); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

// Replace swaps the contents of path for data. Readers see either the old
// file or the new one. The parent directory must already exist.
func Replace(path string, data []byte, perm os.FileMode) (err error) {
	if err := CheckPath(path); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	steps := []struct {
		what string
		do   func() error
	}{
		{"chmod", func() error { return tmp.Chmod(perm) }},
		{"write", func() error { _, err := tmp.Write(data); return err }},
		{"sync", tmp.Sync},
		{"close", tmp.Close},
		{"rename", func() error { return replaceFile(tmp.Name(), path) }},
	}
	for _, s := range steps {
		if err := s.do(); err != nil {
			return fmt.Errorf("replace %s: %s: %w", filepath.Base(path), s.what, err)
		}
	}

	if err := syncDir(dir); err != nil {
		logger.Component("files").Warn("Directory sync failed", "path", dir, "error", err)
	}
	return nil
}
