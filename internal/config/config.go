// Package config provides configuration loading and validation for the CLI
// and the analytics server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Dataset   string `json:"dataset,omitempty"`    // Path to the postings dataset (CSV or Parquet)
	Taxonomy  string `json:"taxonomy,omitempty"`   // Path to a skill taxonomy override file
	OutputDir string `json:"output_dir,omitempty"` // Directory for exported files

	// Server
	ListenAddr      string `json:"listen_addr,omitempty"      validate:"omitempty,hostname_port"`
	ShutdownTimeout int    `json:"shutdown_timeout,omitempty" validate:"gte=0"` // Seconds to wait for in-flight requests

	// Behavior
	TopSectors   int  `json:"top_sectors,omitempty" validate:"gte=0"` // Number of sectors in ranked outputs
	DisableCache bool `json:"disable_cache,omitempty"`                // Rebuild the snapshot on every access
	Verbose      bool `json:"verbose,omitempty"`                      // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Validate file paths exist (if specified)
	if c.Dataset != "" {
		if _, err := os.Stat(c.Dataset); os.IsNotExist(err) {
			return fmt.Errorf("config error: dataset file not found: %s", c.Dataset)
		}
	}
	if c.Taxonomy != "" {
		if _, err := os.Stat(c.Taxonomy); os.IsNotExist(err) {
			return fmt.Errorf("config error: taxonomy file not found: %s", c.Taxonomy)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Dataset == "" {
		result.Dataset = defaults.Dataset
	}
	if result.Taxonomy == "" {
		result.Taxonomy = defaults.Taxonomy
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}

	// Int fields: use default if zero
	if result.ShutdownTimeout == 0 {
		result.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if result.TopSectors == 0 {
		if defaults.TopSectors > 0 {
			result.TopSectors = defaults.TopSectors
		} else {
			result.TopSectors = 3
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
