// Package filelock serializes writers of shared files (manifests, the presets
// database directory) across goroutines and processes, and writes files
// atomically so readers never see a partial manifest.
package filelock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// DefaultRetryDelay is how often LockContext polls a held lock.
const DefaultRetryDelay = 50 * time.Millisecond

// ErrLocked is returned by TryLock callers that require the lock immediately.
var ErrLocked = errors.New("file is locked by another process")

// FileLock is an exclusive advisory lock backed by a lock file.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// New creates a lock backed by the file at path. The lock file is created
// on first acquisition.
func New(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// For returns the lock guarding target, stored next to it as "<target>.lock".
func For(target string) *FileLock {
	return New(target + ".lock")
}

// Path returns the lock file path.
func (fl *FileLock) Path() string {
	return fl.path
}

// LockContext blocks until the lock is acquired or ctx is done.
func (fl *FileLock) LockContext(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(fl.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	ok, err := fl.flock.TryLockContext(ctx, DefaultRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	if !ok {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, ErrLocked)
	}
	return nil
}

// TryLock attempts to acquire the lock without blocking.
// It reports false when another holder owns the lock.
func (fl *FileLock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(fl.path), 0755); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// AtomicWrite writes data to path through a temp file in the same directory
// followed by a rename. If anything fails, an existing file at path is left
// untouched.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Same directory keeps the rename on one filesystem
	tempFile, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	committed := false
	defer func() {
		if !committed {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	committed = true
	return nil
}

// WriteLocked holds the lock for path while fn runs. It is used when the
// content to write depends on what is already on disk.
func WriteLocked(ctx context.Context, path string, fn func() error) error {
	lock := For(path)
	if err := lock.LockContext(ctx); err != nil {
		return err
	}
	defer lock.Unlock()
	return fn()
}

// LockAndWrite acquires the lock for path, atomically writes data, and
// releases the lock.
func LockAndWrite(ctx context.Context, path string, data []byte) error {
	return WriteLocked(ctx, path, func() error {
		return AtomicWrite(path, data, 0644)
	})
}
