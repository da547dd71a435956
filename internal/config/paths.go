package config

import (
	"os"
	"path/filepath"

	"github.com/clangoi/judotimer/internal/constants"
	"github.com/clangoi/judotimer/internal/errors"
)

// GlobalConfigDir returns the path to the global judotimer directory.
// This is $JUDOTIMER_HOME when set, otherwise ~/.judotimer.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	if dir := os.Getenv(constants.HomeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.AppHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "get global config path")
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
// This is always .judotimer/config.yaml relative to the working directory.
func ProjectConfigPath() string {
	return filepath.Join(constants.AppHome, constants.ConfigFileName)
}

// DataDir returns the record directory for the file backend: store.dir when
// set, otherwise the data directory under the global judotimer directory.
func DataDir(cfg *Config) (string, error) {
	if cfg != nil && cfg.Store.Dir != "" {
		return cfg.Store.Dir, nil
	}
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.DataDir), nil
}
