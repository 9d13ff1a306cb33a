// Package config handles CLI configuration loading and management.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	// APIKeyRef is the keystore entry holding the API key. Defaults to
	// "default" when empty.
	APIKeyRef string `yaml:"api_key_ref,omitempty"`

	// BaseURL overrides the production API endpoint.
	BaseURL string `yaml:"base_url,omitempty"`

	// TimeoutSeconds bounds a single request attempt. Zero keeps the SDK
	// default.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// MaxRetries is the retry budget for rate limits and network failures.
	// Zero keeps the SDK default.
	MaxRetries int `yaml:"max_retries,omitempty"`

	// RetryDelaySeconds is the base delay between retries. Zero keeps the
	// SDK default.
	RetryDelaySeconds float64 `yaml:"retry_delay_seconds,omitempty"`

	// DefaultMode is the chat mode used when no --mode flag is given.
	DefaultMode string `yaml:"default_mode,omitempty"`

	// Log configures optional file logging.
	Log LogConfig `yaml:"log,omitempty"`
}

// LogConfig holds file logging settings.
type LogConfig struct {
	// File is the log file path. Empty disables file logging.
	File string `yaml:"file,omitempty"`
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level,omitempty"`
	// MaxSizeMB is the rotation threshold in megabytes.
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxBackups is how many rotated files to keep.
	MaxBackups int `yaml:"max_backups,omitempty"`
	// Compress gzips rotated files.
	Compress bool `yaml:"compress,omitempty"`
}

// DefaultConfigPath returns the default configuration file path for the
// current platform.
// - macOS/Linux: ~/.infinity/config.yaml
// - Windows: %USERPROFILE%\.infinity\config.yaml
func DefaultConfigPath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		// Fallback to current directory
		return "config.yaml"
	}

	return filepath.Join(homeDir, ".infinity", "config.yaml")
}

// LoadConfig loads configuration from the specified path. A missing file is
// not an error and yields an empty config; a file that exists but cannot be
// read or parsed is.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
