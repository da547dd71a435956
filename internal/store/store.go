// Package store persists judotimer's named records (sync status, sync data
// bag, last-used timer settings) in a key/value backend.
//
// Two backends implement Store: FileStore writes one JSON file per record
// with file locks and atomic renames, RedisStore keeps records in Redis.
// Writer sits in front of either one and turns writes into fire-and-forget
// background operations.
//
// Import rules:
//   - CAN import: internal/constants, internal/errors, internal/flock, std lib
//   - MUST NOT import: internal/timer, internal/link, internal/cli
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/clangoi/judotimer/internal/errors"
)

// Store reads and writes named records.
type Store interface {
	// Get returns the record stored under key, or errors.ErrRecordNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the record stored under key.
	Put(ctx context.Context, key string, data []byte) error

	// Close releases backend resources.
	Close() error
}

// validKey matches record names: lowercase letters, digits, '_' and '-'.
var validKey = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// ValidateKey returns errors.ErrInvalidRecordKey unless key is a safe record name.
func ValidateKey(key string) error {
	if !validKey.MatchString(key) {
		return errors.Wrapf(errors.ErrInvalidRecordKey, "%q", key)
	}
	return nil
}

// GetJSON reads key from s and decodes it into v.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(errors.ErrRecordCorrupted, "record %s: %v", key, err)
	}
	return nil
}

// PutJSON encodes v and writes it to s under key.
func PutJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record %s: %w", key, err)
	}
	return s.Put(ctx, key, data)
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
