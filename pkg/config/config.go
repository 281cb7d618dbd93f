/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the recordcast configuration
type Config struct {
	Bind        string  `yaml:"bind"`
	Destination string  `yaml:"destination"`
	Source      Source  `yaml:"source"`
	Listen      Listen  `yaml:"listen"`
	Status      Status  `yaml:"status"`
	Logging     Logging `yaml:"logging"`
}

// Source describes where records to send are loaded from
type Source struct {
	Driver  string `yaml:"driver"`
	DataDir string `yaml:"data_dir"`
	DSN     string `yaml:"dsn"`
}

// Listen contains receiver settings
type Listen struct {
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// Status contains the HTTP status/metrics server settings
type Status struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	APIKey  string `yaml:"api_key,omitempty"` // required on /api/v1 when set
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Bind: "0.0.0.0:8142",
		Source: Source{
			Driver:  "pebble",
			DataDir: "./data",
		},
		Listen: Listen{
			ReadTimeout: 100 * time.Millisecond,
		},
		Status: Status{
			Enabled: false,
			Addr:    "127.0.0.1:9142",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Validate checks the configuration for values the commands cannot use
func (c *Config) Validate() error {
	var errs []error

	switch c.Source.Driver {
	case "pebble":
		if c.Source.DataDir == "" {
			errs = append(errs, errors.New("source.data_dir is required for the pebble driver"))
		}
	case "postgres":
		if c.Source.DSN == "" {
			errs = append(errs, errors.New("source.dsn is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source.driver %q", c.Source.Driver))
	}

	if c.Listen.ReadTimeout <= 0 {
		errs = append(errs, errors.New("listen.read_timeout must be positive"))
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SlogLevel maps the configured level name to a slog.Level
func (l Logging) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown logging.level %q", l.Level)
	}
}

// LoadConfig loads configuration from the specified path. Fields missing
// from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// DSNs can carry credentials
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig writes a default configuration to configPath
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.Source.DataDir = dataDir
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./recordcast.yaml"
	}

	// For Linux/macOS, use ~/.config/recordcast/config.yaml
	configDir := filepath.Join(homeDir, ".config", "recordcast")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
