package store

import (
	"context"
	"time"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/errors"
)

// Options selects and configures a backend.
type Options struct {
	// Backend is "file" or "redis".
	Backend string

	// Dir is the FileStore directory.
	Dir string

	// Redis configures the RedisStore.
	Redis RedisOptions

	// LockTimeout overrides the FileStore lock timeout.
	LockTimeout time.Duration
}

// Open returns the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", constants.StoreBackendFile:
		return NewFileStore(opts.Dir, WithLockTimeout(opts.LockTimeout))
	case constants.StoreBackendRedis:
		return NewRedisStore(ctx, opts.Redis)
	default:
		return nil, errors.Wrapf(errors.ErrConfigInvalidStore, "unknown backend %q", opts.Backend)
	}
}
