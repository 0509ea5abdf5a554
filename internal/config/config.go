// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or come from
// CLI flags.
type Config struct {
	// Discovery
	DistDir   string `json:"dist_dir,omitempty"`  // Root directory holding the packaged bundles
	Marker    string `json:"marker,omitempty"`    // Substring a candidate file name must contain
	Extension string `json:"extension,omitempty"` // Extension a candidate file must have

	// Rule parameters
	ExportName    string   `json:"export_name,omitempty"`    // Global export the bundle must expose
	ForbiddenDeps []string `json:"forbidden_deps,omitempty"` // Dependency names excluded from browser bundles

	// Execution
	NoParallel bool     `json:"no_parallel,omitempty"` // Force sequential file processing
	MaxWorkers int      `json:"max_workers,omitempty" validate:"omitempty,min=1,max=64"`
	Severities []string `json:"severities,omitempty" validate:"omitempty,dive,oneof=high medium low warning"`

	// Output
	JSON           bool `json:"json,omitempty"`            // Emit the structured report instead of text
	StrictWarnings bool `json:"strict_warnings,omitempty"` // Treat warnings as failures
	Verbose        bool `json:"verbose,omitempty"`         // Debug-level logging
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// Validate checks that the configuration has valid values. Required fields
// are not checked here; they are enforced after merging with CLI flags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("config error: field %s failed %q validation", first.Field(), first.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.DistDir != "" {
		if info, err := os.Stat(c.DistDir); err != nil || !info.IsDir() {
			return fmt.Errorf("config error: dist_dir is not a directory: %s", c.DistDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to apply built-in defaults below config-file and flag
// values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DistDir == "" {
		result.DistDir = defaults.DistDir
	}
	if result.Marker == "" {
		result.Marker = defaults.Marker
	}
	if result.Extension == "" {
		result.Extension = defaults.Extension
	}
	if result.ExportName == "" {
		result.ExportName = defaults.ExportName
	}
	if len(result.ForbiddenDeps) == 0 {
		result.ForbiddenDeps = defaults.ForbiddenDeps
	}
	if result.MaxWorkers == 0 {
		result.MaxWorkers = defaults.MaxWorkers
	}
	if len(result.Severities) == 0 {
		result.Severities = defaults.Severities
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
