// Package config holds dashboard configuration and the model pricing table.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all claude-dashboard configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Server  ServerConfig  `toml:"server"`
	Cache   CacheConfig   `toml:"cache"`
	Pricing PricingConfig `toml:"pricing"`
}

// GeneralConfig holds data locations and display preferences.
type GeneralConfig struct {
	ClaudeDir       string `toml:"claude_dir,omitempty"`
	DisplayTimezone string `toml:"display_timezone,omitempty"`
}

// ServerConfig holds the web server settings.
type ServerConfig struct {
	Addr                   string `toml:"addr"`
	LivePollIntervalSec    int    `toml:"live_poll_interval_sec"`
	SessionPollIntervalSec int    `toml:"session_poll_interval_sec"`
}

// CacheConfig holds result-cache TTLs in seconds.
type CacheConfig struct {
	SessionsTTLSec int  `toml:"sessions_ttl_sec"`
	OverviewTTLSec int  `toml:"overview_ttl_sec"`
	AgentsTTLSec   int  `toml:"agents_ttl_sec"`
	PixelTTLSec    int  `toml:"pixel_ttl_sec"`
	UseStore       bool `toml:"use_store"`
}

// PricingConfig allows user-defined pricing for specific models.
type PricingConfig struct {
	Overrides map[string]ModelPricingOverride `toml:"overrides,omitempty"`
}

// ModelPricingOverride holds per-model pricing overrides.
type ModelPricingOverride struct {
	InputPerMTok         *float64 `toml:"input_per_mtok,omitempty"`
	OutputPerMTok        *float64 `toml:"output_per_mtok,omitempty"`
	CacheReadPerMTok     *float64 `toml:"cache_read_per_mtok,omitempty"`
	CacheCreationPerMTok *float64 `toml:"cache_creation_per_mtok,omitempty"`
	DisplayName          *string  `toml:"display_name,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:                   "127.0.0.1:8484",
			LivePollIntervalSec:    3,
			SessionPollIntervalSec: 2,
		},
		Cache: CacheConfig{
			SessionsTTLSec: 30,
			OverviewTTLSec: 300,
			AgentsTTLSec:   60,
			PixelTTLSec:    5,
			UseStore:       true,
		},
	}
}

// ClaudeDir returns the configured Claude data directory, defaulting to
// ~/.claude.
func (c Config) ClaudeDir() string {
	if c.General.ClaudeDir != "" {
		return c.General.ClaudeDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude")
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "claude-dashboard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "claude-dashboard")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}
