package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clangoi/judotimer/internal/constants"
)

func TestGlobalConfigDir_DefaultsToHome(t *testing.T) {
	t.Setenv(constants.HomeEnvVar, "")

	dir, err := GlobalConfigDir()
	require.NoError(t, err)

	assert.Equal(t, constants.AppHome, filepath.Base(dir))
	assert.True(t, filepath.IsAbs(dir))
}

func TestGlobalConfigDir_HonorsEnvOverride(t *testing.T) {
	override := t.TempDir()
	t.Setenv(constants.HomeEnvVar, override)

	dir, err := GlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, override, dir)

	path, err := GlobalConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(override, constants.ConfigFileName), path)
}

func TestProjectConfigPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join(".judotimer", "config.yaml"), ProjectConfigPath())
}

func TestDataDir(t *testing.T) {
	override := t.TempDir()
	t.Setenv(constants.HomeEnvVar, override)

	dir, err := DataDir(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(override, constants.DataDir), dir)

	cfg := DefaultConfig()
	cfg.Store.Dir = "/srv/judotimer"
	dir, err = DataDir(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/srv/judotimer", dir)
}
