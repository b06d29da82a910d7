package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
default_cost = 5
seed = 7
shuffle = false
clone_aware = true
output = "out.csv"
redis_addr = "localhost:6379"
listen = ":9000"
`)
	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.DefaultCost)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.False(t, cfg.Shuffle)
	assert.True(t, cfg.CloneAware)
	assert.Equal(t, "out.csv", cfg.Output)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.True(t, cfg.History, "unset keys keep their defaults")
}

func TestLoadConfigMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, err := LoadConfig(missing, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadConfig(missing, true)
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `defualt_cost = 5`), true)
	assert.ErrorContains(t, err, "unknown key")

	_, err = LoadConfig(writeConfig(t, `default_cost = "three"`), true)
	assert.Error(t, err)
}

func TestConfigPathHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path, err := configPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "gradassign", "config.toml"), path)
}
