package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testKeySource keeps tests independent of machine identity.
type testKeySource struct {
	key string
}

func (s testKeySource) GetMasterKey() ([]byte, error) {
	return []byte(s.key + strings.Repeat("0", 32))[:32], nil
}

func newTestKeystore(t *testing.T) *FileKeystore {
	t.Helper()

	ks, err := NewFileKeystore(filepath.Join(t.TempDir(), "keys.enc"), testKeySource{key: "secret"})
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}
	return ks
}

func TestKeystoreSetGet(t *testing.T) {
	ks := newTestKeystore(t)

	if err := ks.Set("default", "ia_abc123"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := ks.Get("default")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "ia_abc123" {
		t.Errorf("Get() = %q, want ia_abc123", got)
	}
}

func TestKeystoreGetMissing(t *testing.T) {
	ks := newTestKeystore(t)

	_, err := ks.Get("missing")
	var notFound *ErrKeyNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("Get() error = %v, want *ErrKeyNotFound", err)
	}
	if notFound.Name != "missing" {
		t.Errorf("Name = %q, want missing", notFound.Name)
	}
}

func TestKeystoreDelete(t *testing.T) {
	ks := newTestKeystore(t)

	if err := ks.Set("work", "ia_key"); err != nil {
		t.Fatal(err)
	}
	if err := ks.Delete("work"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := ks.Get("work"); err == nil {
		t.Error("Get() after Delete succeeded")
	}

	var notFound *ErrKeyNotFound
	if err := ks.Delete("work"); !errors.As(err, &notFound) {
		t.Errorf("Delete() of missing key error = %v, want *ErrKeyNotFound", err)
	}
}

func TestKeystoreList(t *testing.T) {
	ks := newTestKeystore(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := ks.Set(name, "v"); err != nil {
			t.Fatal(err)
		}
	}

	names, err := ks.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != 3 || names[0] != want[0] || names[1] != want[1] || names[2] != want[2] {
		t.Errorf("List() = %v, want %v", names, want)
	}
}

func TestKeystoreFileIsEncrypted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.enc")
	ks, err := NewFileKeystore(path, testKeySource{key: "secret"})
	if err != nil {
		t.Fatal(err)
	}
	if err := ks.Set("default", "ia_plaintext_secret"); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "ia_plaintext_secret") {
		t.Error("keystore file contains the key in plaintext")
	}
	if !strings.HasPrefix(string(raw), magicHeader) {
		t.Errorf("file header = %q, want %q prefix", raw[:8], magicHeader)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 0600", perm)
	}
}

func TestKeystoreWrongMasterKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.enc")

	ks, err := NewFileKeystore(path, testKeySource{key: "right"})
	if err != nil {
		t.Fatal(err)
	}
	if err := ks.Set("default", "ia_key"); err != nil {
		t.Fatal(err)
	}

	wrong, err := NewFileKeystore(path, testKeySource{key: "wrong"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wrong.Get("default"); err == nil {
		t.Error("Get() with wrong master key succeeded")
	}
}

func TestKeystorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.enc")
	source := testKeySource{key: "secret"}

	first, err := NewFileKeystore(path, source)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Set("default", "ia_key"); err != nil {
		t.Fatal(err)
	}

	second, err := NewFileKeystore(path, source)
	if err != nil {
		t.Fatal(err)
	}
	got, err := second.Get("default")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "ia_key" {
		t.Errorf("Get() = %q, want ia_key", got)
	}
}
