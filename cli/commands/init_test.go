package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/brianonbased-dev/infinity-assistant/cli/config"
)

func TestInitWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	ta := newTestApp(t, "http://localhost")
	if err := ta.run("init", "--config", path); err != nil {
		t.Fatalf("init error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	// The starter file is all comments but must still be valid YAML.
	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Errorf("starter config is not valid YAML: %v", err)
	}

	if !strings.Contains(string(data), "INFINITY_ASSISTANT_API_KEY") {
		t.Error("starter config should mention the API key environment variable")
	}
	if !strings.Contains(ta.stdout.String(), "Next steps") {
		t.Errorf("stdout = %q, want next-steps hint", ta.stdout.String())
	}
}

func TestInitCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	ta := newTestApp(t, "http://localhost")
	if err := ta.run("init", "--config", path); err != nil {
		t.Fatalf("init error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: http://example.com\n"), 0600); err != nil {
		t.Fatal(err)
	}

	ta := newTestApp(t, "http://localhost")
	err := ta.run("init", "--config", path)
	if err == nil {
		t.Fatal("init should refuse to overwrite an existing file")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error = %q, want already-exists message", err)
	}

	// Original content untouched.
	data, _ := os.ReadFile(path)
	if string(data) != "base_url: http://example.com\n" {
		t.Error("existing config was modified")
	}
}

func TestInitForceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("old"), 0600); err != nil {
		t.Fatal(err)
	}

	ta := newTestApp(t, "http://localhost")
	if err := ta.run("init", "--config", path, "--force"); err != nil {
		t.Fatalf("init --force error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) == "old" {
		t.Error("init --force should replace the file")
	}
}
