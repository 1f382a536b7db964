// Package config loads ByteLog's runtime configuration: the fixpoint
// iteration cap and the CLI's default output format. Pattern grounded on
// theRebelliousNerd-codenerd's internal/config (DefaultConfig +
// Load-falls-back-to-defaults-if-the-file-is-missing), narrowed to the
// handful of knobs ByteLog actually has.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how `bytelog query`/`bytelog run` render results.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Config is ByteLog's runtime configuration.
type Config struct {
	// MaxIterations overrides the fixpoint driver's round ceiling
	// (bytelog.MaxRounds) when non-zero.
	MaxIterations int `yaml:"max_iterations"`

	// OutputFormat is the default rendering for query results.
	OutputFormat OutputFormat `yaml:"output_format"`

	// Workers bounds the fixpoint driver's rule-evaluation worker pool.
	// Zero means "one goroutine per rule".
	Workers int `yaml:"workers"`
}

// Default returns ByteLog's built-in configuration.
func Default() *Config {
	return &Config{
		OutputFormat: FormatText,
	}
}

// Load reads cfg from a YAML file at path, starting from Default() and
// overlaying whatever the file sets. A missing file is not an error: Load
// returns the defaults, matching config.go's Load in the teacher.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("bytelog: read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("bytelog: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects a config with out-of-range values.
func (c *Config) Validate() error {
	if c.MaxIterations < 0 {
		return fmt.Errorf("bytelog: max_iterations must be >= 0, got %d", c.MaxIterations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("bytelog: workers must be >= 0, got %d", c.Workers)
	}
	switch c.OutputFormat {
	case FormatText, FormatJSON, "":
	default:
		return fmt.Errorf("bytelog: unknown output_format %q (want %q or %q)", c.OutputFormat, FormatText, FormatJSON)
	}
	return nil
}
