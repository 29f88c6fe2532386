package config

import (
	"os"
	"path/filepath"
)

// EnvConfigPath names the environment variable that pins the config file.
const EnvConfigPath = "CATCHUP_CONFIG"

// DefaultPath returns the XDG config location, $XDG_CONFIG_HOME/catchup/config.toml.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./config.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "catchup", "config.toml")
}

// SearchPaths lists the candidate config files in priority order. A set
// CATCHUP_CONFIG replaces the whole list.
func SearchPaths() []string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return []string{p}
	}
	return []string{
		"./config.toml",
		DefaultPath(),
		"/etc/catchup/config.toml",
	}
}

// Discover returns the first regular file among SearchPaths. When none
// exists it returns a *ConfigError listing every location tried; the error
// matches ErrNotFound.
func Discover() (string, error) {
	paths := SearchPaths()
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, nil
		}
	}

	cfgErr := &ConfigError{Searched: paths}
	if pinned := os.Getenv(EnvConfigPath); pinned != "" {
		cfgErr.Path = EnvConfigPath + "=" + pinned
	}
	return "", cfgErr
}
