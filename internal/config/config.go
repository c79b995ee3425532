// Package config loads promptmate settings from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all promptmate configuration.
type Config struct {
	// Storage
	DBPath string `yaml:"db_path"`

	// Output-format selector policy
	MaxSelected      int    `yaml:"max_selected"`
	QualityThreshold int    `yaml:"quality_threshold"`
	CatalogPath      string `yaml:"catalog_path"` // empty means built-in catalog
	CacheSize        int    `yaml:"cache_size"`

	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

// Dir returns the promptmate home directory (~/.promptmate).
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".promptmate")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath:           filepath.Join(Dir(), "promptmate.db"),
		MaxSelected:      6,
		QualityThreshold: 3,
		CacheSize:        128,
		LogLevel:         "warn",
	}
}

// Load reads the config file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PROMPTMATE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("PROMPTMATE_CATALOG"); v != "" {
		c.CatalogPath = v
	}
	if v := os.Getenv("PROMPTMATE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.MaxSelected < 1 {
		return fmt.Errorf("max_selected must be at least 1, got %d", c.MaxSelected)
	}
	if c.QualityThreshold < 1 {
		return fmt.Errorf("quality_threshold must be at least 1, got %d", c.QualityThreshold)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
