// Package config loads the user's git-finfo defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the defaults file looked up in the user's home directory.
const FileName = ".git-finfo.yml"

// Config holds user defaults. All fields are optional.
type Config struct {
	// Verbosity is the base output level before -v/-q adjustments.
	Verbosity *int `yaml:"verbosity,omitempty"`
	// Color is one of "auto", "always" or "never".
	Color string `yaml:"color,omitempty"`
}

// Load reads ~/.git-finfo.yml. A missing file yields the zero config.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFrom(filepath.Join(home, FileName))
}

// LoadFrom reads a config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return nil, fmt.Errorf("invalid config %s: color must be auto, always or never, got %q", path, c.Color)
	}

	return &c, nil
}

// BaseVerbosity returns the configured default output level, 1 when unset.
func (c *Config) BaseVerbosity() int {
	if c.Verbosity == nil {
		return 1
	}
	return *c.Verbosity
}
