// ABOUTME: Key-value persistence port shared by every storage backend.
// ABOUTME: Records are opaque byte blobs under fixed names.
package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("record not found")

// ErrReadOnly is returned by writes when the store is locked by another process.
var ErrReadOnly = errors.New("cannot write: store is locked by another process (MCP server?)")

// Store reads and writes named records.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)

// Open creates the named backend rooted at dataDir.
func Open(backend, dataDir string) (Store, error) {
	switch backend {
	case BackendBadger, "":
		return OpenBadger(filepath.Join(dataDir, "badger"))
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dataDir, "treino.db"))
	case BackendCharm:
		return OpenCharm(CharmOptions{})
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "treino")
}
