package commands

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/brianonbased-dev/infinity-assistant/cli/config"
	"github.com/brianonbased-dev/infinity-assistant/cli/keystore"
	"github.com/brianonbased-dev/infinity-assistant/infinity"
)

// fakeKeystore is an in-memory keystore for tests.
type fakeKeystore struct {
	keys map[string]string
}

func newFakeKeystore() *fakeKeystore {
	return &fakeKeystore{keys: make(map[string]string)}
}

func (f *fakeKeystore) Set(name, key string) error {
	f.keys[name] = key
	return nil
}

func (f *fakeKeystore) Get(name string) (string, error) {
	key, ok := f.keys[name]
	if !ok {
		return "", &keystore.ErrKeyNotFound{Name: name}
	}
	return key, nil
}

func (f *fakeKeystore) Delete(name string) error {
	if _, ok := f.keys[name]; !ok {
		return &keystore.ErrKeyNotFound{Name: name}
	}
	delete(f.keys, name)
	return nil
}

func (f *fakeKeystore) List() ([]string, error) {
	names := make([]string, 0, len(f.keys))
	for name := range f.keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// testApp bundles an App wired to in-memory dependencies.
type testApp struct {
	app      *App
	keystore *fakeKeystore
	stdin    *bytes.Buffer
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

// newTestApp builds an App pointed at baseURL with a fake keystore holding a
// default key.
func newTestApp(t *testing.T, baseURL string) *testApp {
	t.Helper()

	ks := newFakeKeystore()
	ks.keys["default"] = "test-key"

	ta := &testApp{
		keystore: ks,
		stdin:    &bytes.Buffer{},
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
	}

	ta.app = NewApp(
		WithConfigLoader(func(path string) (*config.Config, error) {
			return &config.Config{BaseURL: baseURL}, nil
		}),
		WithClientFactory(defaultClientFactory),
		WithKeystoreFactory(func() (keystore.Keystore, error) {
			return ks, nil
		}),
		WithIO(ta.stdin, ta.stdout, ta.stderr),
	)

	return ta
}

// run executes the app with the given CLI arguments.
func (ta *testApp) run(args ...string) error {
	ta.app.root.SetArgs(args)
	ta.app.root.SetOut(ta.stdout)
	ta.app.root.SetErr(ta.stderr)
	return ta.app.Execute()
}

func TestResolveAPIKeyEnvFirst(t *testing.T) {
	t.Setenv(infinity.APIKeyEnvVar, "env-key")

	ta := newTestApp(t, "http://localhost")
	key, err := ta.app.resolveAPIKey()
	if err != nil {
		t.Fatalf("resolveAPIKey() error = %v", err)
	}
	if key != "env-key" {
		t.Errorf("resolveAPIKey() = %q, want %q", key, "env-key")
	}
}

func TestResolveAPIKeyKeystoreFallback(t *testing.T) {
	t.Setenv(infinity.APIKeyEnvVar, "")

	ta := newTestApp(t, "http://localhost")
	key, err := ta.app.resolveAPIKey()
	if err != nil {
		t.Fatalf("resolveAPIKey() error = %v", err)
	}
	if key != "test-key" {
		t.Errorf("resolveAPIKey() = %q, want %q", key, "test-key")
	}
}

func TestResolveAPIKeyMissing(t *testing.T) {
	t.Setenv(infinity.APIKeyEnvVar, "")

	ta := newTestApp(t, "http://localhost")
	delete(ta.keystore.keys, "default")

	_, err := ta.app.resolveAPIKey()
	if err == nil {
		t.Fatal("resolveAPIKey() should fail with no key anywhere")
	}

	exitErr, ok := err.(*exitError)
	if !ok {
		t.Fatal("expected *exitError type")
	}
	if exitErr.ExitCode() != ExitValidation {
		t.Errorf("ExitCode() = %d, want %d", exitErr.ExitCode(), ExitValidation)
	}
	if !strings.Contains(err.Error(), "infinity keys set") {
		t.Errorf("error should point at 'infinity keys set', got: %q", err)
	}
}

func TestResolveAPIKeyCustomRef(t *testing.T) {
	t.Setenv(infinity.APIKeyEnvVar, "")

	ks := newFakeKeystore()
	ks.keys["work"] = "work-key"

	stdout := &bytes.Buffer{}
	app := NewApp(
		WithConfigLoader(func(path string) (*config.Config, error) {
			return &config.Config{APIKeyRef: "work"}, nil
		}),
		WithKeystoreFactory(func() (keystore.Keystore, error) {
			return ks, nil
		}),
		WithIO(nil, stdout, stdout),
	)
	if err := app.initConfig(); err != nil {
		t.Fatalf("initConfig() error = %v", err)
	}

	key, err := app.resolveAPIKey()
	if err != nil {
		t.Fatalf("resolveAPIKey() error = %v", err)
	}
	if key != "work-key" {
		t.Errorf("resolveAPIKey() = %q, want %q", key, "work-key")
	}
}

func TestInitConfigAppliesDefaultMode(t *testing.T) {
	ta := newTestApp(t, "http://localhost")
	ta.app.cfg = nil

	ta.app.loadConfig = func(path string) (*config.Config, error) {
		return &config.Config{DefaultMode: "build"}, nil
	}
	if err := ta.app.initConfig(); err != nil {
		t.Fatalf("initConfig() error = %v", err)
	}
	if ta.app.mode != "build" {
		t.Errorf("mode = %q, want %q", ta.app.mode, "build")
	}
}
