// Package config centralizes all application configuration into typed structs.
//
// Go Learning Note: Configuration Management:
// Go projects typically manage configuration in one of these ways:
//  1. Struct literals with defaults (NewDefaultConfig below)
//  2. Environment variables via os.Getenv() (FromEnv below layers these on top)
//  3. Config files (YAML/TOML) via "github.com/spf13/viper"
//  4. Command-line flags (the cobra commands in internal/cli bind flags
//     directly onto these fields)
//
// Using typed structs (not raw strings/maps) gives you compile-time safety
// and IDE autocompletion.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config is the top-level configuration container.
type Config struct {
	Server  ServerConfig
	Ride    RideConfig
	History HistoryConfig
	Storage StorageConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// RideConfig holds the defaults applied when a ride is created without them.
type RideConfig struct {
	DefaultName     string
	DefaultMaxRider int
}

// HistoryConfig controls where CSV exports and imports requested over the
// API are read from and written to. Paths from API clients are resolved
// relative to Dir and may not escape it.
type HistoryConfig struct {
	Dir string
}

// StorageConfig selects the repository backend.
type StorageConfig struct {
	Type     string // StorageTypeMemory or StorageTypeRedis
	RedisURL string
}

// LogConfig controls the slog handler built by the binaries.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

// NewDefaultConfig returns a Config populated with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Ride: RideConfig{
			DefaultName:     "Unnamed Ride",
			DefaultMaxRider: 2,
		},
		History: HistoryConfig{
			Dir: "exports",
		},
		Storage: StorageConfig{
			Type:     StorageTypeMemory,
			RedisURL: "redis://localhost:6379",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// FromEnv returns the default config with any THEMEPARK_* environment
// variables applied on top.
func FromEnv() (*Config, error) {
	cfg := NewDefaultConfig()

	if v := os.Getenv("THEMEPARK_PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("THEMEPARK_STORAGE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("THEMEPARK_REDIS_URL"); v != "" {
		cfg.Storage.RedisURL = v
	}
	if v := os.Getenv("THEMEPARK_EXPORT_DIR"); v != "" {
		cfg.History.Dir = v
	}
	if v := os.Getenv("THEMEPARK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("THEMEPARK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("THEMEPARK_DEFAULT_MAX_RIDER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("THEMEPARK_DEFAULT_MAX_RIDER: %w", err)
		}
		cfg.Ride.DefaultMaxRider = n
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings that have no safe fallback.
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageTypeMemory, StorageTypeRedis:
	default:
		return fmt.Errorf("invalid storage type %q: must be %q or %q", c.Storage.Type, StorageTypeMemory, StorageTypeRedis)
	}
	if c.Ride.DefaultMaxRider < 1 {
		return fmt.Errorf("default max rider must be at least 1, got %d", c.Ride.DefaultMaxRider)
	}
	if c.History.Dir == "" {
		return fmt.Errorf("history dir must not be empty")
	}
	return nil
}
