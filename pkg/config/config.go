package config

import (
	"github.com/sdejongh/shelfsync/pkg/models"
)

// Config represents the application configuration
type Config struct {
	// Source is the local root
	Source string `yaml:"source"`
	// Destination is the foreign root
	Destination string `yaml:"destination"`
	// BandwidthLimit caps copy throughput in bytes per second (0 = unlimited)
	BandwidthLimit int64 `yaml:"bandwidth_limit"`

	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	File   string `yaml:"file"`   // Log file path (empty = stderr when verbose)
	Format string `yaml:"format"` // "json" or "text"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format string `yaml:"format"` // "human", "json" or "progress"
}

// Default returns the default configuration. Source and Destination are
// left empty and must be provided.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
		Output: OutputConfig{
			Format: "human",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Source == "" {
		return &models.ValidationError{
			Field:   "source",
			Message: "is required",
		}
	}

	if c.Destination == "" {
		return &models.ValidationError{
			Field:   "destination",
			Message: "is required",
		}
	}

	if c.BandwidthLimit < 0 {
		return &models.ValidationError{
			Field:   "bandwidth_limit",
			Message: "must not be negative",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true, "progress": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human', 'json' or 'progress'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
