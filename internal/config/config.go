// Package config loads advisor settings.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config is the full advisor configuration.
type Config struct {
	// Theme is the TUI color theme (vapor, midnight, dusk).
	Theme string `mapstructure:"theme"`

	// Language selects the message catalog, as a BCP 47 tag.
	Language string `mapstructure:"language"`

	// TablesFile optionally overrides the severity and category tables.
	TablesFile string `mapstructure:"tables_file"`

	// Watch refetches the recommendation when its file changes.
	Watch bool `mapstructure:"watch"`

	// PageSize is the number of rows per clusters table page.
	PageSize int `mapstructure:"page_size"`

	// MarkdownStyle is a glamour style name (dark, light, notty, auto).
	MarkdownStyle string `mapstructure:"markdown_style"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives log output. Empty discards logs.
	File string `mapstructure:"file"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Theme:         "vapor",
		Language:      "en",
		PageSize:      10,
		MarkdownStyle: "dark",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Theme) {
	case "vapor", "midnight", "dusk":
	default:
		errs = append(errs, fmt.Errorf("theme: unknown theme %q", c.Theme))
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page_size: must be positive, got %d", c.PageSize))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}
	switch c.MarkdownStyle {
	case "dark", "light", "notty", "auto", "ascii", "pink", "dracula":
	default:
		errs = append(errs, fmt.Errorf("markdown_style: unknown style %q", c.MarkdownStyle))
	}
	return errors.Join(errs...)
}
