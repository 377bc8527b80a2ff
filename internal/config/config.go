// Package config loads guestlist settings from an optional TOML file and
// GUESTLIST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mmynk/guestlist/internal/seed"
)

// Config holds application configuration.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Seed      SeedConfig
	GuestList GuestListConfig `mapstructure:"guestlist"`
	Log       LogConfig
}

// ServerConfig holds the listener and the address clients dial.
type ServerConfig struct {
	Port    int
	Address string
}

// StorageConfig selects the durable slot backend.
type StorageConfig struct {
	// Driver is "sqlite" or "file".
	Driver string
	// Path is the sqlite database file.
	Path string
	// Dir holds one JSON file per key for the file driver.
	Dir string
}

// SeedConfig controls the remote seed fetch.
type SeedConfig struct {
	Enabled  bool
	URL      string
	Timeout  time.Duration
	Attempts uint
}

// GuestListConfig controls startup behavior of the list.
type GuestListConfig struct {
	// RestoreOnStart loads the durable slot before merging the seed.
	RestoreOnStart bool `mapstructure:"restore_on_start"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	// File, when set, also writes logs to a rotated file.
	File       string
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
}

var (
	validDrivers   = []string{"sqlite", "file"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// New returns a viper instance with defaults and env bindings applied.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.address", "http://localhost:8080")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "./data/guestlist.db")
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.url", seed.DefaultURL)
	v.SetDefault("seed.timeout", 10*time.Second)
	v.SetDefault("seed.attempts", 1)
	v.SetDefault("guestlist.restore_on_start", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetConfigType("toml")
	v.SetEnvPrefix("GUESTLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configuration. An empty path searches ./guestlist.toml; a
// missing file is fine, a broken one is not.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("guestlist")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	if !slices.Contains(validDrivers, c.Storage.Driver) {
		return fmt.Errorf("invalid storage.driver %q: must be one of %v", c.Storage.Driver, validDrivers)
	}
	if c.Storage.Driver == "sqlite" && c.Storage.Path == "" {
		return errors.New("storage.path is required for the sqlite driver")
	}
	if c.Storage.Driver == "file" && c.Storage.Dir == "" {
		return errors.New("storage.dir is required for the file driver")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if !slices.Contains(validLogLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if c.Seed.Enabled && c.Seed.URL == "" {
		return errors.New("seed.url is required when the seed is enabled")
	}
	return nil
}
