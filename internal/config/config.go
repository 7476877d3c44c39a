package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the jott.yaml configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error, none. Defaults to none.
	LogLevel string `yaml:"log_level,omitempty"`

	// LogFormat selects the slog handler: text or json. Defaults to text.
	LogFormat string `yaml:"log_format,omitempty"`

	// LogFile redirects logs from stderr to a file.
	LogFile string `yaml:"log_file,omitempty"`

	// Color controls diagnostic colouring on stderr: auto, always or never.
	Color string `yaml:"color,omitempty"`

	// MaxCallDepth bounds nested user function calls before the run aborts
	// with a stack exhaustion error.
	MaxCallDepth int `yaml:"max_call_depth,omitempty"`

	History HistoryConfig `yaml:"history,omitempty"`
}

// HistoryConfig controls the SQLite run history.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`

	// Path of the database file, relative to the config file when not absolute.
	Path string `yaml:"path,omitempty"`
}

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	DefaultHistoryPath = ".jott/history.db"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "none": true}

// Default returns the configuration used when no jott.yaml is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a jott.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses jott.yaml content from bytes.
// The path argument is used for error messages and to resolve relative paths.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if path != "" && cfg.History.Path != "" && !filepath.IsAbs(cfg.History.Path) {
		cfg.History.Path = filepath.Join(filepath.Dir(path), cfg.History.Path)
	}
	return &cfg, nil
}

// FindConfig searches for jott.yaml starting from dir and walking up
// to parent directories.
// Returns the path to the config file, or "" if none exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) validate(path string) error {
	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("%s: log_level: unknown level %q", path, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%s: log_format: must be text or json, got %q", path, c.LogFormat)
	}
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color: must be auto, always or never, got %q", path, c.Color)
	}
	if c.MaxCallDepth < 0 || c.MaxCallDepth > MaxCallDepthLimit {
		return fmt.Errorf("%s: max_call_depth: must be between 1 and %d", path, MaxCallDepthLimit)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "none"
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.MaxCallDepth == 0 {
		c.MaxCallDepth = DefaultMaxCallDepth
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath
	}
}
