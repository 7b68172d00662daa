// Package config loads and persists the almanac configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Storage backend names accepted in the config file.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// AuthConfig holds the HTTP Basic Auth credentials for the web surface.
// The password is stored only as an Argon2id hash string.
type AuthConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// StorageConfig selects the persistence backend for the event collection.
type StorageConfig struct {
	// Backend is one of "memory", "file", or "sqlite".
	Backend string `yaml:"backend"`

	// Path is the backing file for the file and sqlite backends. Ignored
	// for memory.
	Path string `yaml:"path"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the web surface.
	Listen string `yaml:"listen"`

	// CalendarName labels ICS exports.
	CalendarName string `yaml:"calendar_name"`

	Storage StorageConfig `yaml:"storage"`

	// BackupCron is a cron schedule for periodic backup snapshots of the
	// event collection. Empty disables backups.
	BackupCron string `yaml:"backup_cron"`

	// Auth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	Auth *AuthConfig `yaml:"auth,omitempty"`
}

// Default returns the in-memory default configuration.
func Default() *Config {
	return &Config{
		Listen:       "127.0.0.1:8080",
		CalendarName: "almanac",
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    "almanac.json",
		},
	}
}

// Normalize fills missing values with defaults so partially-filled configs
// still behave. Unknown backend names are an error rather than a fallback:
// silently switching storage would orphan the user's events.
func (c *Config) Normalize() error {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.CalendarName == "" {
		c.CalendarName = "almanac"
	}
	switch c.Storage.Backend {
	case BackendMemory, BackendFile, BackendSQLite:
	case "":
		c.Storage.Backend = BackendFile
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend != BackendMemory && c.Storage.Path == "" {
		c.Storage.Path = "almanac.json"
		if c.Storage.Backend == BackendSQLite {
			c.Storage.Path = "almanac.db"
		}
	}
	return nil
}

// Load reads the YAML config at path. A missing file yields the defaults
// written back to path with 0600 perms, so a first run self-initializes.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600 perms,
// creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := cfg.Normalize(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".almanac-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
