package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/clangoi/judotimer/internal/domain"
	"github.com/clangoi/judotimer/internal/errors"
)

// timerYAML and storeYAML write durations as strings ("1s") so the files
// stay editable and load back through the duration decode hook.
type timerYAML struct {
	DefaultMode    string                 `yaml:"default_mode"`
	TickInterval   string                 `yaml:"tick_interval"`
	PrepareSeconds int                    `yaml:"prepare_seconds"`
	Tabata         domain.TabataConfig    `yaml:"tabata"`
	Countdown      domain.CountdownConfig `yaml:"countdown"`
}

type storeYAML struct {
	Backend          string `yaml:"backend"`
	Dir              string `yaml:"dir"`
	RedisURL         string `yaml:"redis_url"`
	RedisMaxActive   int    `yaml:"redis_max_active"`
	RedisMaxIdle     int    `yaml:"redis_max_idle"`
	RedisIdleTimeout string `yaml:"redis_idle_timeout"`
}

// MarshalYAML implements yaml.Marshaler.
func (c TimerConfig) MarshalYAML() (any, error) {
	return timerYAML{
		DefaultMode:    c.DefaultMode,
		TickInterval:   c.TickInterval.String(),
		PrepareSeconds: c.PrepareSeconds,
		Tabata:         c.Tabata,
		Countdown:      c.Countdown,
	}, nil
}

// MarshalYAML implements yaml.Marshaler.
func (c StoreConfig) MarshalYAML() (any, error) {
	return storeYAML{
		Backend:          c.Backend,
		Dir:              c.Dir,
		RedisURL:         c.RedisURL,
		RedisMaxActive:   c.RedisMaxActive,
		RedisMaxIdle:     c.RedisMaxIdle,
		RedisIdleTimeout: c.RedisIdleTimeout.String(),
	}, nil
}

// Marshal encodes cfg in the config file format.
func Marshal(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.ErrConfigNil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}
	return data, nil
}

// WriteFile writes cfg to path, creating parent directories. An existing
// file is only replaced when overwrite is set.
func WriteFile(path string, cfg *Config, overwrite bool) error {
	if err := Validate(cfg); err != nil {
		return errors.Wrap(err, "refusing to write invalid configuration")
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if !overwrite && fileExists(path) {
		return errors.Wrapf(errors.ErrConfigExists, "%s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}
	return nil
}
