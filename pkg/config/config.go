// Package config loads the YAML configuration of the snwire tool: the
// designated text encoding, logging and frame capture.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

// Config holds all configuration.
type Config struct {
	Text    TextConfig    `yaml:"text"`
	Log     LogConfig     `yaml:"log"`
	Capture CaptureConfig `yaml:"capture"`
}

// TextConfig selects the designated text encoding.
type TextConfig struct {
	// Encoding is an IANA charset name, e.g. "UTF-8" or "ISO-8859-1".
	Encoding string `yaml:"encoding"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json

	// File, when set, receives logs in addition to stderr and is rotated
	// at MaxSizeMB.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// CaptureConfig holds frame capture settings.
type CaptureConfig struct {
	// File, when set, receives every frame decoded by the tool.
	File string `yaml:"file"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Text: TextConfig{
			Encoding: "UTF-8",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads configuration from a YAML file. An empty filename or a
// missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := wire.LookupText(c.Text.Encoding); err != nil {
		return fmt.Errorf("text.encoding: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be one of: text, json")
	}
	if c.Log.MaxSizeMB < 0 {
		return fmt.Errorf("log.max_size_mb cannot be negative")
	}
	if c.Log.MaxBackups < 0 {
		return fmt.Errorf("log.max_backups cannot be negative")
	}
	return nil
}

// Apply installs the designated text encoding process-wide.
func (c *Config) Apply() error {
	text, err := wire.LookupText(c.Text.Encoding)
	if err != nil {
		return fmt.Errorf("text.encoding: %w", err)
	}
	wire.SetTextEncoding(text)
	return nil
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
}
