package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/example/billid/internal/core/billing"
)

// Output format constants
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

const (
	dirName  = ".billid"
	fileName = "config.json"

	currentVersion = "1.0"
)

// Config represents the flat billid configuration
type Config struct {
	Version        string `json:"version"`
	DefaultService string `json:"default_service,omitempty"` // WS, EC, ...
	FixedYear      int    `json:"fixed_year,omitempty"`      // 0 = system clock
	LogLevel       string `json:"log_level,omitempty"`       // "debug", "info", "warn", "error"
	Output         string `json:"output,omitempty"`          // "text", "json" or "yaml"
	NoColor        bool   `json:"no_color,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Version:  currentVersion,
		LogLevel: "warn",
		Output:   OutputText,
	}
}

// Path returns the config file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, dirName, fileName)
}

// LoadConfig reads .billid/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", Path(dir), err)
	}

	return cfg, nil
}

// LoadOrDefault reads the config from dir, falling back to Default when the
// file does not exist. Any other read or parse failure is returned.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfgDir := filepath.Join(dir, dirName)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", dirName, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.DefaultService != "" {
		if _, ok := billing.LookupService(strings.ToUpper(c.DefaultService)); !ok {
			return fmt.Errorf("default_service %q is not a known service code", c.DefaultService)
		}
	}
	if c.FixedYear != 0 && (c.FixedYear < 2000 || c.FixedYear > 2099) {
		return fmt.Errorf("fixed_year %d must be between 2000 and 2099", c.FixedYear)
	}
	if !IsValidOutput(c.Output) {
		return fmt.Errorf("output %q must be one of text, json, yaml", c.Output)
	}
	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("log_level %q must be one of debug, info, warn, error", c.LogLevel)
		}
	}
	return nil
}

// IsValidOutput reports whether format is a supported output format.
// Empty means text.
func IsValidOutput(format string) bool {
	switch format {
	case "", OutputText, OutputJSON, OutputYAML:
		return true
	}
	return false
}
