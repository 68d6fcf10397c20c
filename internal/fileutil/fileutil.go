// Package fileutil provides small filesystem helpers shared by the export
// engine and commands.
package fileutil

import (
	"errors"
	"fmt"
	"os"
)

// EnsureWritableDir creates path and any missing ancestors, then verifies
// the result is a writable directory. Succeeds if the directory already
// exists. An empty path is rejected before touching the filesystem.
func EnsureWritableDir(path string) error {
	if path == "" {
		return errors.New("empty directory path")
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}

	// Permission bits lie on some filesystems, so probe with a real write.
	probe, err := os.CreateTemp(path, ".write-probe-*")
	if err != nil {
		return fmt.Errorf("directory not writable: %s: %w", path, err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)

	return nil
}
