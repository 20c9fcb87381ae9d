// Package config holds the server configuration, loaded from an optional
// TOML file with environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config encapsulates all tunables.
type Config struct {
	Port  string `toml:"port"`
	Debug bool   `toml:"debug"`

	// AllowedOrigin is the frontend origin accepted for websocket
	// upgrades and CORS. Empty allows any origin.
	AllowedOrigin string `toml:"allowed_origin"`

	// DefaultTimeControlMinutes is the per-side budget for matched games
	// and for direct creates that do not request one.
	DefaultTimeControlMinutes int `toml:"default_time_control_minutes"`

	// TimerGraceMs is the allowance the deadline scheduler adds on top of
	// a side's remaining time before declaring a timeout.
	TimerGraceMs int64 `toml:"timer_grace_ms"`

	DatabaseURL string   `toml:"database_url"`
	APIKeys     []string `toml:"api_keys"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:                      "8080",
		DefaultTimeControlMinutes: 5,
		TimerGraceMs:              1000,
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets the environment override file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("FRONTEND_PATH"); v != "" {
		c.AllowedOrigin = v
	}
	if v := os.Getenv("API_KEYS"); v != "" {
		keys := strings.Split(v, ",")
		for i, key := range keys {
			keys[i] = strings.TrimSpace(key)
		}
		c.APIKeys = keys
	}
}
