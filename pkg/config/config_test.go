package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5, cfg.DefaultTimeControlMinutes)
	assert.Equal(t, int64(1000), cfg.TimerGraceMs)
	assert.Empty(t, cfg.APIKeys)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = "9090"
debug = true
allowed_origin = "https://play.example.com"
default_time_control_minutes = 10
timer_grace_ms = 250
api_keys = ["k1", "k2"]
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "https://play.example.com", cfg.AllowedOrigin)
	assert.Equal(t, 10, cfg.DefaultTimeControlMinutes)
	assert.Equal(t, int64(250), cfg.TimerGraceMs)
	assert.Equal(t, []string{"k1", "k2"}, cfg.APIKeys)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`port = "3000"`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 5, cfg.DefaultTimeControlMinutes)
	assert.Equal(t, int64(1000), cfg.TimerGraceMs)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("API_KEYS", "a, b ,c")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.APIKeys)
}
