package store

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/errors"
	"github.com/clangoi/judotimer/internal/flock"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// FileStore keeps each record in <dir>/<key>.json. Every access takes an
// exclusive lock on <dir>/<key>.lock so separate judotimer processes never
// interleave; writes go through a temp file and a rename.
type FileStore struct {
	dir         string
	lockTimeout time.Duration
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithLockTimeout overrides how long to wait for a record lock.
func WithLockTimeout(d time.Duration) FileOption {
	return func(s *FileStore) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string, opts ...FileOption) (*FileStore, error) {
	if dir == "" {
		return nil, errors.Wrap(errors.ErrEmptyValue, "store directory")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	s := &FileStore{dir: dir, lockTimeout: constants.LockTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the directory records are kept in.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get reads the record stored under key.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	lock, err := flock.Acquire(ctx, s.lockPath(key), s.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Release() }()

	data, err := os.ReadFile(s.recordPath(key)) //#nosec G304 -- path is built from a validated key
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(errors.ErrRecordNotFound, "record %s", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record %s: %w", key, err)
	}
	return data, nil
}

// Put atomically replaces the record stored under key.
func (s *FileStore) Put(ctx context.Context, key string, data []byte) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if err := ValidateKey(key); err != nil {
		return err
	}

	lock, err := flock.Acquire(ctx, s.lockPath(key), s.lockTimeout)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	if err := atomicWrite(s.recordPath(key), data); err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; FileStore holds no open handles between calls.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) recordPath(key string) string {
	return filepath.Join(s.dir, key+constants.RecordFileExt)
}

func (s *FileStore) lockPath(key string) string {
	return filepath.Join(s.dir, key+constants.LockFileExt)
}

// atomicWrite writes data to a temp file, syncs it, and renames it over path.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	// Data must be on disk before the rename makes it visible.
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
