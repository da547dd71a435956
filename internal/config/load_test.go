package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/domain"
	"github.com/clangoi/judotimer/internal/errors"
)

// isolate points the global config at an empty directory and moves into
// another one so neither the real home nor a project config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(constants.HomeEnvVar, home)
	t.Chdir(t.TempDir())
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	isolate(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err, "Load should not fail when no config file exists")
	require.NotNil(t, cfg)

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_GlobalAndProjectConfig(t *testing.T) {
	home := isolate(t)

	writeFile(t, filepath.Join(home, constants.ConfigFileName), `
timer:
  default_mode: countdown
  countdown:
    minutes: 3
    seconds: 30
sync:
  device_name: Dojo-Tablet
`)
	writeFile(t, ProjectConfigPath(), `
timer:
  countdown:
    minutes: 2
`)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "countdown", cfg.Timer.DefaultMode)
	assert.Equal(t, domain.CountdownConfig{Minutes: 2, Seconds: 30}, cfg.Timer.Countdown)
	assert.Equal(t, "Dojo-Tablet", cfg.Sync.DeviceName)
}

func TestLoad_EnvironmentOverridesFiles(t *testing.T) {
	home := isolate(t)

	writeFile(t, filepath.Join(home, constants.ConfigFileName), `
timer:
  tick_interval: 500ms
`)
	t.Setenv("JUDOTIMER_TIMER_TICK_INTERVAL", "250ms")
	t.Setenv("JUDOTIMER_TIMER_TABATA_WORK_SECONDS", "45")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Timer.TickInterval)
	assert.Equal(t, 45, cfg.Timer.Tabata.WorkSeconds)
}

func TestLoad_InvalidConfigFails(t *testing.T) {
	home := isolate(t)

	writeFile(t, filepath.Join(home, constants.ConfigFileName), `
timer:
  tabata:
    work_seconds: 0
`)

	_, err := Load(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, errors.ErrConfigInvalidTimer)
	assert.ErrorIs(t, err, errors.ErrInvalidTabataConfig)
}

func TestLoadFromPaths_ProjectConfigOverridesGlobal(t *testing.T) {
	t.Setenv(constants.HomeEnvVar, t.TempDir())

	dir := t.TempDir()
	globalConfig := filepath.Join(dir, "global.yaml")
	projectConfig := filepath.Join(dir, "project.yaml")

	writeFile(t, globalConfig, `
timer:
  prepare_seconds: 10
  tabata:
    work_seconds: 30
    rest_seconds: 15
store:
  backend: file
  dir: /var/lib/judotimer
`)
	writeFile(t, projectConfig, `
timer:
  tabata:
    work_seconds: 40
`)

	cfg, err := LoadFromPaths(context.Background(), projectConfig, globalConfig)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Timer.PrepareSeconds)
	assert.Equal(t, 40, cfg.Timer.Tabata.WorkSeconds)
	assert.Equal(t, 15, cfg.Timer.Tabata.RestSeconds)
	assert.Equal(t, 8, cfg.Timer.Tabata.CyclesPerSet, "unset keys keep defaults")
	assert.Equal(t, "/var/lib/judotimer", cfg.Store.Dir)
}

func TestLoadFromPaths_MissingFilesUseDefaults(t *testing.T) {
	t.Setenv(constants.HomeEnvVar, t.TempDir())

	dir := t.TempDir()
	cfg, err := LoadFromPaths(context.Background(),
		filepath.Join(dir, "missing-project.yaml"),
		filepath.Join(dir, "missing-global.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPaths_MalformedYAML(t *testing.T) {
	t.Setenv(constants.HomeEnvVar, t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "timer: [unterminated")

	_, err := LoadFromPaths(context.Background(), path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read project config")
}

func TestLoadFromPaths_DurationStrings(t *testing.T) {
	t.Setenv(constants.HomeEnvVar, t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
store:
  backend: redis
  redis_url: redis://localhost:6379/0
  redis_idle_timeout: 90s
`)

	cfg, err := LoadFromPaths(context.Background(), path, "")
	require.NoError(t, err)

	assert.Equal(t, constants.StoreBackendRedis, cfg.Store.Backend)
	assert.Equal(t, 90*time.Second, cfg.Store.RedisIdleTimeout)
}
