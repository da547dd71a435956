package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - timer.default_mode must be a known mode
//   - timer.tick_interval must be between 10ms and 1m
//   - timer.prepare_seconds must be between 0 and constants.MaxPhaseSeconds
//   - timer.tabata and timer.countdown must be valid timer configs
//   - sync.code_length must be between 4 and 12
//   - store.backend must be "file" or "redis"; redis requires a redis:// URL
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateTimerConfig(&cfg.Timer); err != nil {
		return err
	}

	if err := validateSyncConfig(&cfg.Sync); err != nil {
		return err
	}

	return validateStoreConfig(&cfg.Store)
}

// validateTimerConfig checks timer defaults.
func validateTimerConfig(cfg *TimerConfig) error {
	if !constants.TimerMode(cfg.DefaultMode).Valid() {
		return errors.Wrapf(errors.ErrConfigInvalidTimer,
			"timer.default_mode must be one of %v, got %q", constants.TimerModes(), cfg.DefaultMode)
	}

	if cfg.TickInterval < constants.MinTickInterval || cfg.TickInterval > constants.MaxTickInterval {
		return errors.Wrapf(errors.ErrConfigInvalidTimer,
			"timer.tick_interval must be between %s and %s, got %s",
			constants.MinTickInterval, constants.MaxTickInterval, cfg.TickInterval)
	}

	if cfg.PrepareSeconds < 0 || cfg.PrepareSeconds > constants.MaxPhaseSeconds {
		return errors.Wrapf(errors.ErrConfigInvalidTimer,
			"timer.prepare_seconds must be between 0 and %d, got %d", constants.MaxPhaseSeconds, cfg.PrepareSeconds)
	}

	// Keep both sentinels in the chain so callers can match either.
	if err := cfg.Tabata.Validate(); err != nil {
		return fmt.Errorf("%w: timer.tabata: %w", errors.ErrConfigInvalidTimer, err)
	}

	if err := cfg.Countdown.Validate(); err != nil {
		return fmt.Errorf("%w: timer.countdown: %w", errors.ErrConfigInvalidTimer, err)
	}

	return nil
}

// validateSyncConfig checks device link settings.
func validateSyncConfig(cfg *SyncConfig) error {
	if cfg.CodeLength < constants.MinDeviceCodeLength || cfg.CodeLength > constants.MaxDeviceCodeLength {
		return errors.Wrapf(errors.ErrConfigInvalidSync,
			"sync.code_length must be between %d and %d, got %d",
			constants.MinDeviceCodeLength, constants.MaxDeviceCodeLength, cfg.CodeLength)
	}

	return nil
}

// validateStoreConfig checks the persistence backend settings.
func validateStoreConfig(cfg *StoreConfig) error {
	switch cfg.Backend {
	case constants.StoreBackendFile:
		return nil
	case constants.StoreBackendRedis:
	default:
		return errors.Wrapf(errors.ErrConfigInvalidStore,
			"store.backend must be %q or %q, got %q",
			constants.StoreBackendFile, constants.StoreBackendRedis, cfg.Backend)
	}

	u, err := url.Parse(cfg.RedisURL)
	if cfg.RedisURL == "" || err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
		// The URL may carry a password, so it is never echoed back.
		return errors.Wrap(errors.ErrConfigInvalidStore,
			"store.redis_url must be a redis:// or rediss:// URL when store.backend is redis")
	}

	if cfg.RedisMaxActive < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidStore,
			"store.redis_max_active must be at least 1, got %d", cfg.RedisMaxActive)
	}

	if cfg.RedisMaxIdle < 0 || cfg.RedisMaxIdle > cfg.RedisMaxActive {
		return errors.Wrapf(errors.ErrConfigInvalidStore,
			"store.redis_max_idle must be between 0 and %d, got %d", cfg.RedisMaxActive, cfg.RedisMaxIdle)
	}

	if cfg.RedisIdleTimeout < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidStore,
			"store.redis_idle_timeout cannot be negative, got %s", cfg.RedisIdleTimeout)
	}

	if strings.TrimSpace(u.Host) == "" {
		return errors.Wrap(errors.ErrConfigInvalidStore, "store.redis_url must include a host")
	}

	return nil
}
