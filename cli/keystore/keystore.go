// Package keystore provides encrypted storage for API keys.
package keystore

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"runtime"
)

// Keystore defines the interface for secure key storage.
type Keystore interface {
	// Set stores a key-value pair.
	Set(name, value string) error
	// Get retrieves a value by name. Returns *ErrKeyNotFound if missing.
	Get(name string) (string, error)
	// Delete removes a key by name.
	Delete(name string) error
	// List returns all stored key names, sorted.
	List() ([]string, error)
}

// ErrKeyNotFound is returned when a requested key does not exist.
type ErrKeyNotFound struct {
	Name string
}

func (e *ErrKeyNotFound) Error() string {
	return "key not found: " + e.Name
}

// MasterKeySource supplies the master key material the file encryption key
// is derived from.
type MasterKeySource interface {
	GetMasterKey() ([]byte, error)
}

// MachineKeySource derives the master key from hostname and username. It
// requires no setup, but anyone with the same machine identity can derive
// the same key; set INFINITY_MASTER_KEY for stronger protection.
type MachineKeySource struct{}

// GetMasterKey implements MasterKeySource.
func (MachineKeySource) GetMasterKey() ([]byte, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}

	material := hostname + ":" + username + ":infinity-keystore"
	hash := sha256.Sum256([]byte(material))
	return hash[:], nil
}

// EnvKeySource reads the master key from the INFINITY_MASTER_KEY
// environment variable, falling back to MachineKeySource when unset.
type EnvKeySource struct{}

// MasterKeyEnvVar is the environment variable EnvKeySource reads.
const MasterKeyEnvVar = "INFINITY_MASTER_KEY"

// GetMasterKey implements MasterKeySource.
func (EnvKeySource) GetMasterKey() ([]byte, error) {
	if key := os.Getenv(MasterKeyEnvVar); key != "" {
		hash := sha256.Sum256([]byte(key))
		return hash[:], nil
	}
	return MachineKeySource{}.GetMasterKey()
}

// DefaultKeystorePath returns the default keystore file path.
// - macOS/Linux: ~/.infinity/keys.enc
// - Windows: %USERPROFILE%\.infinity\keys.enc
func DefaultKeystorePath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return "keys.enc"
	}

	return filepath.Join(homeDir, ".infinity", "keys.enc")
}

// NewKeystore creates a file-based encrypted keystore at the default path.
func NewKeystore() (Keystore, error) {
	return NewFileKeystore(DefaultKeystorePath(), EnvKeySource{})
}
