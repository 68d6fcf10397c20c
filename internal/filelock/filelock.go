// Package filelock guards an output directory against concurrent export
// runs. The export engine is strictly single-threaded and not reentrant,
// so two processes exporting into the same tree would race; the lock turns
// that into a clean refusal.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock is an advisory lock scoped to one output directory.
type RunLock struct {
	flock *flock.Flock
	path  string
}

// ForOutputDir creates the lock for the given output directory. The lock
// file lives beside the directory as <dir>.lock so acquiring it does not
// depend on the directory itself existing yet.
func ForOutputDir(dir string) (*RunLock, error) {
	path := filepath.Clean(dir) + ".lock"
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	return &RunLock{flock: flock.New(path), path: path}, nil
}

// TryAcquire attempts to take the lock without blocking. Returns false when
// another run holds it.
func (l *RunLock) TryAcquire() (bool, error) {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("lock %s: %w", l.path, err)
	}
	return acquired, nil
}

// Release drops the lock.
func (l *RunLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", l.path, err)
	}
	return nil
}

// Path returns the lock file path.
func (l *RunLock) Path() string {
	return l.path
}
