//go:build unix

package flock_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clangoi/judotimer/internal/errors"
	"github.com/clangoi/judotimer/internal/flock"
)

func openLockFile(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) // #nosec G304 -- test code using safe temp dir
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestExclusive(t *testing.T) {
	t.Parallel()

	t.Run("acquires and releases", func(t *testing.T) {
		t.Parallel()
		f := openLockFile(t, filepath.Join(t.TempDir(), "test.lock"))

		require.NoError(t, flock.Exclusive(f.Fd()))
		require.NoError(t, flock.Unlock(f.Fd()))
		require.NoError(t, flock.Exclusive(f.Fd()), "lock can be reacquired after unlock")
		require.NoError(t, flock.Unlock(f.Fd()))
	})

	t.Run("fails when already held", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "test.lock")
		f1 := openLockFile(t, path)
		f2 := openLockFile(t, path)

		require.NoError(t, flock.Exclusive(f1.Fd()))
		defer func() { _ = flock.Unlock(f1.Fd()) }()

		assert.Error(t, flock.Exclusive(f2.Fd()))
	})
}

func TestAcquire(t *testing.T) {
	t.Parallel()

	t.Run("creates missing directories", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "nested", "dir", "sync_status.lock")

		lock, err := flock.Acquire(context.Background(), path, time.Second)
		require.NoError(t, err)
		assert.FileExists(t, path)
		require.NoError(t, lock.Release())
		require.NoError(t, lock.Release(), "second release is a no-op")
	})

	t.Run("times out while held", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "held.lock")

		held, err := flock.Acquire(context.Background(), path, time.Second)
		require.NoError(t, err)
		defer func() { _ = held.Release() }()

		_, err = flock.Acquire(context.Background(), path, 120*time.Millisecond)
		require.ErrorIs(t, err, errors.ErrLockTimeout)
	})

	t.Run("honors canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := flock.Acquire(ctx, filepath.Join(t.TempDir(), "x.lock"), time.Second)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("available again after release", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "again.lock")

		first, err := flock.Acquire(context.Background(), path, time.Second)
		require.NoError(t, err)
		require.NoError(t, first.Release())

		second, err := flock.Acquire(context.Background(), path, 100*time.Millisecond)
		require.NoError(t, err)
		require.NoError(t, second.Release())
	})

	t.Run("nil lock release", func(t *testing.T) {
		t.Parallel()
		var l *flock.Lock
		assert.NoError(t, l.Release())
	})
}
