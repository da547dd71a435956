// Package config provides configuration management for judotimer with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (applied by the commands on top of the loaded Config)
//  2. Environment variables (JUDOTIMER_* prefix)
//  3. Project config (.judotimer/config.yaml)
//  4. Global config (~/.judotimer/config.yaml, or $JUDOTIMER_HOME/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants, internal/domain and
// internal/errors, but MUST NOT import other internal packages.
package config

import (
	"time"

	"github.com/clangoi/judotimer/internal/domain"
)

// Config is the root configuration structure for judotimer.
type Config struct {
	// Timer contains the defaults the engine starts with.
	Timer TimerConfig `yaml:"timer" mapstructure:"timer"`

	// Sync contains settings for device linking.
	Sync SyncConfig `yaml:"sync" mapstructure:"sync"`

	// Store contains settings for the persistence backend.
	Store StoreConfig `yaml:"store" mapstructure:"store"`
}

// TimerConfig contains the timer defaults used when no settings were persisted.
type TimerConfig struct {
	// DefaultMode is the mode a fresh engine starts in.
	// Valid values: "tabata", "countdown", "stopwatch"
	// Default: "tabata"
	DefaultMode string `yaml:"default_mode" mapstructure:"default_mode"`

	// TickInterval is the period between engine ticks when running.
	// One tick always counts as one second of timer time.
	// Default: 1s
	TickInterval time.Duration `yaml:"tick_interval" mapstructure:"tick_interval"`

	// PrepareSeconds is the length of the preparing phase entered on Start.
	// Zero skips the phase.
	// Default: 0
	PrepareSeconds int `yaml:"prepare_seconds" mapstructure:"prepare_seconds"`

	// Tabata is the default interval protocol.
	Tabata domain.TabataConfig `yaml:"tabata" mapstructure:"tabata"`

	// Countdown is the default countdown duration.
	Countdown domain.CountdownConfig `yaml:"countdown" mapstructure:"countdown"`
}

// SyncConfig contains settings for linking instances.
type SyncConfig struct {
	// CodeLength is the length of generated device codes.
	// Default: 6, Valid range: 4-12
	CodeLength int `yaml:"code_length" mapstructure:"code_length"`

	// DeviceName is the name announced when this instance links.
	DeviceName string `yaml:"device_name" mapstructure:"device_name"`
}

// StoreConfig contains settings for the record store.
type StoreConfig struct {
	// Backend selects the store implementation.
	// Valid values: "file", "redis"
	// Default: "file"
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Dir is the directory holding record files for the file backend.
	// Empty means ~/.judotimer/data.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// RedisURL is the connection URL for the redis backend.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`

	// RedisMaxActive is the maximum number of pooled connections.
	// Default: 10
	RedisMaxActive int `yaml:"redis_max_active" mapstructure:"redis_max_active"`

	// RedisMaxIdle is the maximum number of idle pooled connections.
	// Default: 3
	RedisMaxIdle int `yaml:"redis_max_idle" mapstructure:"redis_max_idle"`

	// RedisIdleTimeout closes pooled connections idle for longer than this.
	// Default: 240s
	RedisIdleTimeout time.Duration `yaml:"redis_idle_timeout" mapstructure:"redis_idle_timeout"`
}
