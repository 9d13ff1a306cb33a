package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, missing file must be tolerated", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfig() = nil config")
	}
	if cfg.APIKeyRef != "" || cfg.BaseURL != "" {
		t.Errorf("missing file yielded non-empty config: %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `api_key_ref: work
base_url: https://staging.infinityassistant.io/api
timeout_seconds: 30
max_retries: 5
retry_delay_seconds: 0.5
default_mode: build
log:
  file: /tmp/infinity.log
  level: debug
  max_size_mb: 20
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.APIKeyRef != "work" {
		t.Errorf("APIKeyRef = %q, want work", cfg.APIKeyRef)
	}
	if cfg.BaseURL != "https://staging.infinityassistant.io/api" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.TimeoutSeconds)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.RetryDelaySeconds != 0.5 {
		t.Errorf("RetryDelaySeconds = %v, want 0.5", cfg.RetryDelaySeconds)
	}
	if cfg.DefaultMode != "build" {
		t.Errorf("DefaultMode = %q, want build", cfg.DefaultMode)
	}
	if cfg.Log.File != "/tmp/infinity.log" || cfg.Log.Level != "debug" || cfg.Log.MaxSizeMB != 20 {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_mode: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() error = nil for invalid YAML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if !strings.HasSuffix(path, "config.yaml") {
		t.Errorf("DefaultConfigPath() = %q, want a config.yaml path", path)
	}
}
