// Package config handles scour configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./config.yaml, ~/.config/scour/config.yaml, /etc/scour/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"config.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "scour", "config.yaml"))
	}

	paths = append(paths, "/etc/scour/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
// Returns the path found, or an error if nothing was found.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Config holds all scour configuration.
type Config struct {
	Discord   DiscordConfig `yaml:"discord"`
	Search    SearchConfig  `yaml:"search"`
	LogLevel  string        `yaml:"log_level"`
	LogFormat string        `yaml:"log_format"` // "text" (default) or "json"
}

// DiscordConfig defines the Discord connection settings.
type DiscordConfig struct {
	// Token is the bot token. Falls back to the DISCORD_TOKEN environment
	// variable when empty, so the token can stay out of the config file.
	Token string `yaml:"token"`
}

// SearchConfig defines search and session behavior.
type SearchConfig struct {
	// DefaultMinLength is the minimum message length applied when the
	// /search invocation omits the limit option (default 80).
	DefaultMinLength int `yaml:"default_min_length"`
	// SessionTTLSec is how long a search session stays navigable after
	// its last use, in seconds (default 900, matching the button timeout).
	SessionTTLSec int `yaml:"session_ttl_sec"`
}

// SessionTTL returns the session time-to-live as a duration.
func (s SearchConfig) SessionTTL() time.Duration {
	return time.Duration(s.SessionTTLSec) * time.Second
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			DefaultMinLength: 80,
			SessionTTLSec:    900,
		},
	}
}

// Validate applies defaults and checks the configuration for values that
// would prevent the bot from running. The token check honors the
// DISCORD_TOKEN fallback so Validate and BotToken agree.
func (c *Config) Validate() error {
	if c.BotToken() == "" {
		return fmt.Errorf("discord.token is required (or set DISCORD_TOKEN)")
	}
	if c.Search.DefaultMinLength <= 0 {
		c.Search.DefaultMinLength = 80
	}
	if c.Search.SessionTTLSec <= 0 {
		c.Search.SessionTTLSec = 900
	}
	if c.LogLevel != "" {
		if _, err := ParseLogLevel(c.LogLevel); err != nil {
			return err
		}
	}
	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log_format %q (valid: text, json)", c.LogFormat)
	}
	return nil
}

// BotToken returns the configured bot token, falling back to the
// DISCORD_TOKEN environment variable.
func (c *Config) BotToken() string {
	if c.Discord.Token != "" {
		return c.Discord.Token
	}
	return os.Getenv("DISCORD_TOKEN")
}
