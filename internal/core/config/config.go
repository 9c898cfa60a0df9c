// Package config handles configuration loading and validation for shelf.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/shelf/internal/core/sorting"
)

// Config holds the application configuration.
type Config struct {
	Theme   string        `yaml:"theme"`
	Sort    sorting.State `yaml:"sort"`
	Grid    GridConfig    `yaml:"grid"`
	Ignore  []string      `yaml:"ignore"`
	Recents RecentsConfig `yaml:"recents"`

	LibraryDir string `yaml:"-"` // set by caller, not from config file
}

// GridConfig controls the browser grid layout.
type GridConfig struct {
	// Columns is the number of item columns in the browser view.
	Columns int `yaml:"columns"`
}

// RecentsConfig controls the recently-opened store.
type RecentsConfig struct {
	// MaxEntries caps the recents file; 0 keeps everything.
	MaxEntries int `yaml:"max_entries"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: "tokyo-night",
		Sort:  sorting.DefaultState(),
		Grid:  GridConfig{Columns: 3},
		Recents: RecentsConfig{
			MaxEntries: 200,
		},
	}
}

// Load reads configuration from the given path and sets the library directory.
// If configPath is empty or doesn't exist, returns defaults with the provided
// libraryDir.
func Load(configPath, libraryDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.LibraryDir = libraryDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set libraryDir since Unmarshal may have cleared it
			cfg.LibraryDir = libraryDir
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
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Sort.Field == "" {
		c.Sort.Field = defaults.Sort.Field
	}
	if c.Grid.Columns == 0 {
		c.Grid.Columns = defaults.Grid.Columns
	}
}

// RecentsFile returns the path to the recently-opened JSON file.
func (c *Config) RecentsFile() string {
	return filepath.Join(c.LibraryDir, ".shelf", "recents.json")
}
