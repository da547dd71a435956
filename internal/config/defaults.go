package config

import (
	"time"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/domain"
)

// Redis pool defaults.
const (
	defaultRedisMaxActive   = 10
	defaultRedisMaxIdle     = 3
	defaultRedisIdleTimeout = 240 * time.Second
)

// DefaultConfig returns a new Config with the built-in default values.
// These match the defaults registered on every viper instance.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			DefaultMode:    constants.ModeTabata.String(),
			TickInterval:   constants.DefaultTickInterval,
			PrepareSeconds: 0,
			Tabata:         domain.DefaultTabataConfig(),
			Countdown:      domain.DefaultCountdownConfig(),
		},
		Sync: SyncConfig{
			CodeLength: constants.DefaultDeviceCodeLength,
		},
		Store: StoreConfig{
			Backend:          constants.StoreBackendFile,
			RedisMaxActive:   defaultRedisMaxActive,
			RedisMaxIdle:     defaultRedisMaxIdle,
			RedisIdleTimeout: defaultRedisIdleTimeout,
		},
	}
}
