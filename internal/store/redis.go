package store

import (
	"context"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/mrz1836/go-cache"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/errors"
)

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	// URL is the server address, e.g. redis://localhost:6379.
	URL string

	// MaxActive caps open connections (0 means unlimited).
	MaxActive int

	// MaxIdle is the number of idle connections kept in the pool.
	MaxIdle int

	// IdleTimeout closes connections idle for longer than this.
	IdleTimeout time.Duration

	// MaxConnLifetime closes connections older than this (0 means no limit).
	MaxConnLifetime time.Duration

	// Prefix namespaces every key. Defaults to "judotimer:".
	Prefix string
}

// RedisStore keeps records as plain string values in Redis.
type RedisStore struct {
	client *cache.Client
	prefix string
}

// NewRedisStore connects to the server in opts.URL.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		return nil, errors.Wrap(errors.ErrEmptyValue, "redis url")
	}
	if opts.Prefix == "" {
		opts.Prefix = constants.RedisKeyPrefix
	}

	client, err := cache.Connect(ctx, opts.URL, opts.MaxActive, opts.MaxIdle, opts.MaxConnLifetime, opts.IdleTimeout, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisStore{client: client, prefix: opts.Prefix}, nil
}

// Get reads the record stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	value, err := cache.Get(ctx, s.client, s.prefix+key)
	if errors.Is(err, redis.ErrNil) {
		return nil, errors.Wrapf(errors.ErrRecordNotFound, "record %s", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record %s: %w", key, err)
	}
	return []byte(value), nil
}

// Put replaces the record stored under key.
func (s *RedisStore) Put(ctx context.Context, key string, data []byte) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if err := ValidateKey(key); err != nil {
		return err
	}

	if err := cache.Set(ctx, s.client, s.prefix+key, string(data)); err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}
	return nil
}

// Close returns the pool's connections.
func (s *RedisStore) Close() error {
	s.client.Close()
	return nil
}

var _ Store = (*RedisStore)(nil)
