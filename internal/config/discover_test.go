package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory with no config in the environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func writeConfigAt(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[channel]\nname = \"ITV UK\"\n"), 0o644))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, DefaultPath(), filepath.Join(".config", "catchup", "config.toml"))

	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/catchup/config.toml", DefaultPath())
}

func TestSearchPaths(t *testing.T) {
	dir := isolate(t)
	assert.Equal(t, []string{
		"./config.toml",
		filepath.Join(dir, "xdg", "catchup", "config.toml"),
		"/etc/catchup/config.toml",
	}, SearchPaths())

	t.Setenv(EnvConfigPath, "/srv/catchup.toml")
	assert.Equal(t, []string{"/srv/catchup.toml"}, SearchPaths())
}

func TestDiscover(t *testing.T) {
	t.Run("pinned by environment", func(t *testing.T) {
		dir := isolate(t)
		pinned := filepath.Join(dir, "custom.toml")
		writeConfigAt(t, pinned)
		writeConfigAt(t, filepath.Join(dir, "config.toml"))
		t.Setenv(EnvConfigPath, pinned)

		path, err := Discover()
		require.NoError(t, err)
		assert.Equal(t, pinned, path)
	})

	t.Run("working directory before xdg", func(t *testing.T) {
		dir := isolate(t)
		writeConfigAt(t, filepath.Join(dir, "config.toml"))
		writeConfigAt(t, DefaultPath())

		path, err := Discover()
		require.NoError(t, err)
		assert.Equal(t, "./config.toml", path)
	})

	t.Run("xdg", func(t *testing.T) {
		isolate(t)
		writeConfigAt(t, DefaultPath())

		path, err := Discover()
		require.NoError(t, err)
		assert.Equal(t, DefaultPath(), path)
	})

	t.Run("directories are skipped", func(t *testing.T) {
		dir := isolate(t)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "config.toml"), 0o755))
		writeConfigAt(t, DefaultPath())

		path, err := Discover()
		require.NoError(t, err)
		assert.Equal(t, DefaultPath(), path)
	})
}

func TestDiscover_NotFound(t *testing.T) {
	isolate(t)
	if _, err := os.Stat("/etc/catchup/config.toml"); err == nil {
		t.Skip("system config present")
	}

	_, err := Discover()
	require.ErrorIs(t, err, ErrNotFound)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, SearchPaths(), cfgErr.Searched)
	assert.Empty(t, cfgErr.Path)
	assert.Contains(t, err.Error(), "/etc/catchup/config.toml")
}

func TestDiscover_PinnedMissing(t *testing.T) {
	dir := isolate(t)
	writeConfigAt(t, filepath.Join(dir, "config.toml"))
	t.Setenv(EnvConfigPath, "/nonexistent/config.toml")

	_, err := Discover()
	require.ErrorIs(t, err, ErrNotFound, "a pinned path never falls back to the search list")

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"/nonexistent/config.toml"}, cfgErr.Searched)
	assert.Contains(t, err.Error(), "CATCHUP_CONFIG=/nonexistent/config.toml:")
}
