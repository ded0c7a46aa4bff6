package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromEnvPath(t *testing.T) {
	path := writeConfig(t, `
[log]
path = "/tmp/termisu-test.log"

[defaults]
mouse = true
enhanced_keyboard = true
`)
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/termisu-test.log", cfg.Log.Path)
	assert.True(t, cfg.Defaults.Mouse)
	assert.True(t, cfg.Defaults.EnhancedKeyboard)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "nope.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Log.Path)
	assert.False(t, cfg.Defaults.Mouse)
	assert.False(t, cfg.Defaults.EnhancedKeyboard)
}

func TestLoadBadToml(t *testing.T) {
	path := writeConfig(t, "not [valid toml")
	t.Setenv(EnvConfigPath, path)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadExpandsHome(t *testing.T) {
	path := writeConfig(t, `
[log]
path = "~/termisu-trace.log"
`)
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "termisu-trace.log"), cfg.Log.Path)
}

func TestOpenLogDisabled(t *testing.T) {
	cfg := &Config{}
	lg, err := cfg.OpenLog()
	require.NoError(t, err)
	assert.Nil(t, lg)
}

func TestOpenLogWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	cfg := &Config{Log: Log{Path: path}}

	lg, err := cfg.OpenLog()
	require.NoError(t, err)
	require.NotNil(t, lg)

	lg.Printf("session created")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "termisu: ")
	assert.Contains(t, string(data), "session created")
}
