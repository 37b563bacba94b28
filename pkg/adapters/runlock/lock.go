// Package runlock provides a cross-process run lock backed by an
// advisory file lock.
package runlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/user/playblast/pkg/ports"
)

// DefaultName is the lock file name used by Default.
const DefaultName = "playblast.lock"

// Lock wraps a flock.Flock.
type Lock struct {
	path string
	lock *flock.Flock
}

// New creates a lock on path. The parent directory is created on first use.
func New(path string) *Lock {
	return &Lock{
		path: path,
		lock: flock.New(path),
	}
}

// Default returns a lock in the user's temporary directory.
func Default() *Lock {
	return New(filepath.Join(os.TempDir(), DefaultName))
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// TryLock attempts to take the lock without blocking. It reports false
// when another process holds it.
func (l *Lock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return false, fmt.Errorf("acquire lock: %w", err)
	}
	ok, err := l.lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire lock: %w", err)
	}
	return ok, nil
}

// Unlock releases the lock.
func (l *Lock) Unlock() error {
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

var _ ports.RunLock = (*Lock)(nil)
