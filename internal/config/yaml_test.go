package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/errors"
)

func TestMarshal_WritesDurationsAsStrings(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "tick_interval: 1s")
	assert.Contains(t, out, "redis_idle_timeout: 4m0s")
	assert.Contains(t, out, "work_seconds: 20")
}

func TestMarshal_NilConfig(t *testing.T) {
	_, err := Marshal(nil)
	require.ErrorIs(t, err, errors.ErrConfigNil)
}

func TestWriteFile_LoadsBack(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", constants.ConfigFileName)

	cfg := DefaultConfig()
	cfg.Timer.DefaultMode = constants.ModeCountdown.String()
	cfg.Timer.TickInterval = 500 * time.Millisecond
	cfg.Timer.Tabata.WorkSeconds = 45
	cfg.Timer.Countdown.Minutes = 4
	cfg.Sync.DeviceName = "Mat-1"
	cfg.Store.RedisIdleTimeout = time.Minute

	require.NoError(t, WriteFile(path, cfg, false))

	loaded, err := LoadFromPaths(context.Background(), "", path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWriteFile_RefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), constants.ConfigFileName)
	require.NoError(t, WriteFile(path, DefaultConfig(), false))

	err := WriteFile(path, DefaultConfig(), false)
	require.ErrorIs(t, err, errors.ErrConfigExists)

	require.NoError(t, WriteFile(path, DefaultConfig(), true))
}

func TestWriteFile_RejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), constants.ConfigFileName)
	cfg := DefaultConfig()
	cfg.Store.Backend = "sqlite"

	err := WriteFile(path, cfg, false)
	require.Error(t, err)
	assert.False(t, fileExists(path))
}
