// Package config handles configuration loading and validation for chiclet.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Selection SelectionConfig `yaml:"selection"`
	TUI       TUIConfig       `yaml:"tui"`
	Database  DatabaseConfig  `yaml:"database"`
	DataDir   string          `yaml:"-"` // set by caller, not from config file
}

// DataConfig describes where the data view comes from and how it is paged.
type DataConfig struct {
	File         string        `yaml:"file"`          // YAML or JSON data view
	PageSize     int           `yaml:"page_size"`     // rows per segment; 0 loads everything
	Watch        bool          `yaml:"watch"`         // reload when the file changes
	WatchPattern string        `yaml:"watch_pattern"` // doublestar pattern for change events
	Debounce     time.Duration `yaml:"debounce"`      // quiet period before reloading
}

// SelectionConfig holds host-side selection rules.
type SelectionConfig struct {
	// MaxSelected caps the number of selected identities. 0 means unlimited.
	MaxSelected int `yaml:"max_selected"`
}

// TUIConfig holds terminal UI options.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DatabaseConfig holds SQLite connection settings.
type DatabaseConfig struct {
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			PageSize:     0,
			WatchPattern: "*.{yaml,yml,json}",
			Debounce:     150 * time.Millisecond,
		},
		TUI: TUIConfig{
			Theme: "tokyo-night",
		},
		Database: DatabaseConfig{
			BusyTimeout:  5000,
			MaxOpenConns: 4,
			MaxIdleConns: 2,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir

			// Relative data files are resolved against the config file.
			if cfg.Data.File != "" && !filepath.IsAbs(cfg.Data.File) {
				cfg.Data.File = filepath.Join(filepath.Dir(configPath), cfg.Data.File)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Data.WatchPattern == "" {
		c.Data.WatchPattern = defaults.Data.WatchPattern
	}
	if c.Data.Debounce == 0 {
		c.Data.Debounce = defaults.Data.Debounce
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Data.PageSize < 0 {
		return fmt.Errorf("data.page_size cannot be negative")
	}

	if c.Data.Debounce < 0 {
		return fmt.Errorf("data.debounce cannot be negative")
	}

	if c.Selection.MaxSelected < 0 {
		return fmt.Errorf("selection.max_selected cannot be negative")
	}

	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout cannot be negative")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}

	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns cannot exceed database.max_open_conns")
	}

	return nil
}

// DatabaseFile returns the path to the SQLite database.
func (c *Config) DatabaseFile() string {
	return filepath.Join(c.DataDir, "chiclet.db")
}

// LogFile returns the default log file location.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "chiclet.log")
}
