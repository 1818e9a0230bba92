// ABOUTME: Treino configuration with storage backend selection.
// ABOUTME: Reads a JSON file, applies TREINO_* environment overrides, and opens the store.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/treino/internal/kv"
	"github.com/harperreed/treino/internal/logging"
	"github.com/harperreed/treino/internal/storage"
	"github.com/sirupsen/logrus"
)

const (
	DefaultOrigin     = "http://localhost:8080"
	DefaultListenAddr = "127.0.0.1:8080"
)

// Config stores treino configuration.
type Config struct {
	// Backend selects the storage backend: "badger" (default), "sqlite", "charm" or "memory".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/treino.
	DataDir string `json:"data_dir,omitempty"`

	// Origin prefixes share links: {origin}/workout/{shareId}.
	Origin string `json:"origin,omitempty"`

	// ListenAddr is where `treino serve` listens.
	ListenAddr string `json:"listen_addr,omitempty"`

	LogLevel string `json:"log_level,omitempty"`
	LogFile  string `json:"log_file,omitempty"`
	LogJSON  bool   `json:"log_json,omitempty"`
}

// GetBackend returns the configured backend, defaulting to badger.
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return kv.BackendBadger
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return kv.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetOrigin returns the share link origin without a trailing slash.
func (c *Config) GetOrigin() string {
	if c.Origin == "" {
		return DefaultOrigin
	}
	return strings.TrimRight(c.Origin, "/")
}

// GetListenAddr returns the share server address.
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
}

// LoggerParams converts the logging fields for logging.Setup.
func (c *Config) LoggerParams() logging.LoggerSetupParams {
	return logging.LoggerSetupParams{
		LogFileName:   ExpandPath(c.LogFile),
		LogToStderr:   true,
		LogLevel:      c.LogLevel,
		LogFormatJSON: c.LogJSON,
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore opens the configured key-value backend and wraps it in a Repository.
func (c *Config) OpenStore() (*storage.Store, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	if backend != kv.BackendMemory && backend != kv.BackendCharm {
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	store, err := kv.Open(backend, dataDir)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	logrus.WithFields(logrus.Fields{"backend": backend, "dir": dataDir}).Debug("store opened")
	return storage.New(store).WithLogger(logrus.StandardLogger()), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "treino", "config.json")
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(GetConfigPath())
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TREINO_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("TREINO_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("TREINO_ORIGIN"); v != "" {
		c.Origin = v
	}
	if v := os.Getenv("TREINO_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("TREINO_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("TREINO_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("TREINO_LOG_JSON"); v != "" {
		c.LogJSON = v == "1" || strings.EqualFold(v, "true")
	}
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
