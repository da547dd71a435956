package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/errors"
)

// newViperInstance creates a new Viper instance with the standard judotimer
// environment prefix (JUDOTIMER_), key replacer, and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Missing config files are not an error.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("timer.default_mode", cfg.Timer.DefaultMode).
		Dur("timer.tick_interval", cfg.Timer.TickInterval).
		Str("store.backend", cfg.Store.Backend).
		Msg("configuration loaded")

	return cfg, nil
}

// loadGlobalConfig merges the global config file when it exists.
func loadGlobalConfig(v *viper.Viper) error {
	path, err := GlobalConfigPath()
	if err != nil || !fileExists(path) {
		// Home dir unavailable or no global config, skip silently
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig merges the project config file (.judotimer/config.yaml) when it exists.
func loadProjectConfig(v *viper.Viper) error {
	path := ProjectConfigPath()
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadFromPaths loads configuration from specific file paths for testing.
//
// projectConfigPath is the path to project-level config (higher priority).
// globalConfigPath is the path to global config (lower priority).
// Either path can be empty to skip that level.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the YAML tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	// Timer defaults
	v.SetDefault("timer.default_mode", d.Timer.DefaultMode)
	v.SetDefault("timer.tick_interval", d.Timer.TickInterval.String())
	v.SetDefault("timer.prepare_seconds", d.Timer.PrepareSeconds)
	v.SetDefault("timer.tabata.work_seconds", d.Timer.Tabata.WorkSeconds)
	v.SetDefault("timer.tabata.rest_seconds", d.Timer.Tabata.RestSeconds)
	v.SetDefault("timer.tabata.cycles_per_set", d.Timer.Tabata.CyclesPerSet)
	v.SetDefault("timer.tabata.total_sets", d.Timer.Tabata.TotalSets)
	v.SetDefault("timer.tabata.rest_between_sets_seconds", d.Timer.Tabata.RestBetweenSetsSeconds)
	v.SetDefault("timer.countdown.minutes", d.Timer.Countdown.Minutes)
	v.SetDefault("timer.countdown.seconds", d.Timer.Countdown.Seconds)

	// Sync defaults
	v.SetDefault("sync.code_length", d.Sync.CodeLength)
	v.SetDefault("sync.device_name", d.Sync.DeviceName)

	// Store defaults
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.dir", d.Store.Dir)
	v.SetDefault("store.redis_url", d.Store.RedisURL)
	v.SetDefault("store.redis_max_active", d.Store.RedisMaxActive)
	v.SetDefault("store.redis_max_idle", d.Store.RedisMaxIdle)
	v.SetDefault("store.redis_idle_timeout", d.Store.RedisIdleTimeout.String())
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// This configures mapstructure to handle time.Duration conversion from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
