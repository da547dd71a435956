package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clangoi/judotimer/internal/errors"
)

func TestValidate_NilConfig(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, Validate(nil), errors.ErrConfigNil)
}

func TestValidate_DefaultConfig(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Validate(DefaultConfig()))
}

func TestValidate_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "unknown default mode",
			mutate:  func(c *Config) { c.Timer.DefaultMode = "interval" },
			wantErr: errors.ErrConfigInvalidTimer,
		},
		{
			name:    "tick interval too short",
			mutate:  func(c *Config) { c.Timer.TickInterval = time.Millisecond },
			wantErr: errors.ErrConfigInvalidTimer,
		},
		{
			name:    "tick interval too long",
			mutate:  func(c *Config) { c.Timer.TickInterval = 2 * time.Minute },
			wantErr: errors.ErrConfigInvalidTimer,
		},
		{
			name:    "negative prepare seconds",
			mutate:  func(c *Config) { c.Timer.PrepareSeconds = -1 },
			wantErr: errors.ErrConfigInvalidTimer,
		},
		{
			name:    "prepare seconds too long",
			mutate:  func(c *Config) { c.Timer.PrepareSeconds = 3601 },
			wantErr: errors.ErrConfigInvalidTimer,
		},
		{
			name:    "tabata with too many sets",
			mutate:  func(c *Config) { c.Timer.Tabata.TotalSets = 1 << 31 },
			wantErr: errors.ErrInvalidTabataConfig,
		},
		{
			name:    "invalid tabata",
			mutate:  func(c *Config) { c.Timer.Tabata.CyclesPerSet = 0 },
			wantErr: errors.ErrInvalidTabataConfig,
		},
		{
			name:    "invalid countdown",
			mutate:  func(c *Config) { c.Timer.Countdown.Seconds = 60 },
			wantErr: errors.ErrInvalidCountdownConfig,
		},
		{
			name:    "code length too short",
			mutate:  func(c *Config) { c.Sync.CodeLength = 3 },
			wantErr: errors.ErrConfigInvalidSync,
		},
		{
			name:    "code length too long",
			mutate:  func(c *Config) { c.Sync.CodeLength = 13 },
			wantErr: errors.ErrConfigInvalidSync,
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Store.Backend = "sqlite" },
			wantErr: errors.ErrConfigInvalidStore,
		},
		{
			name:    "redis without url",
			mutate:  func(c *Config) { c.Store.Backend = "redis" },
			wantErr: errors.ErrConfigInvalidStore,
		},
		{
			name: "redis with http url",
			mutate: func(c *Config) {
				c.Store.Backend = "redis"
				c.Store.RedisURL = "http://localhost:6379"
			},
			wantErr: errors.ErrConfigInvalidStore,
		},
		{
			name: "redis idle above active",
			mutate: func(c *Config) {
				c.Store.Backend = "redis"
				c.Store.RedisURL = "redis://localhost:6379"
				c.Store.RedisMaxIdle = 20
			},
			wantErr: errors.ErrConfigInvalidStore,
		},
		{
			name: "redis valid",
			mutate: func(c *Config) {
				c.Store.Backend = "redis"
				c.Store.RedisURL = "rediss://cache.example.com:6380/1"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_RedisURLNeverEchoed(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Store.Backend = "redis"
	cfg.Store.RedisURL = "ftp://user:" + "hunter" + "2secret@host"

	err := Validate(cfg)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "2secret")
}

func TestValidate_TabataErrorCarriesBothSentinels(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Timer.Tabata.WorkSeconds = 0

	err := Validate(cfg)
	require.ErrorIs(t, err, errors.ErrConfigInvalidTimer)
	assert.ErrorIs(t, err, errors.ErrInvalidTabataConfig)
}
