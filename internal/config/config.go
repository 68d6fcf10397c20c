// Package config loads exhume configuration from a YAML file, falling back
// to defaults when no file is present. CLI flags override file settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds exhume configuration options.
type Config struct {
	// DBPath is the path to the catalog database.
	DBPath string `yaml:"db_path"`

	// OutputDir is the directory flagged entries are exported into.
	OutputDir string `yaml:"output_dir"`

	// LogLevel sets logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// ReportPath, when set, is where the HTML run report is written.
	ReportPath string `yaml:"report_path"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		DBPath:    "catalog.db",
		OutputDir: "exported",
		LogLevel:  "info",
	}
}

// Load reads configuration from path. A missing file returns defaults
// without error; a malformed file returns an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}
