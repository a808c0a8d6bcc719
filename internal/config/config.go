// Package config provides configuration loading for the pdftext CLIs.
// Supports YAML files, environment variables and flag overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Cache drivers.
const (
	CacheDriverNone   = "none"
	CacheDriverSQLite = "sqlite"
	CacheDriverRedis  = "redis"
)

// Config holds all configuration for a pdftext invocation.
type Config struct {
	Log   LogConfig   `yaml:"log"`
	Cache CacheConfig `yaml:"cache"`

	// LegacyExitCodes makes extraction failures exit 0. Usage and
	// not-found errors always exit 1.
	LegacyExitCodes bool `yaml:"legacy_exit_codes"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Driver string        `yaml:"driver"` // none, sqlite or redis
	TTL    time.Duration `yaml:"ttl"`
	SQLite SQLiteConfig  `yaml:"sqlite"`
	Redis  RedisConfig   `yaml:"redis"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// DefaultConfig returns a configuration with logging and caching off.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "disabled",
			Format: "console",
		},
		Cache: CacheConfig{
			Driver: CacheDriverNone,
			TTL:    7 * 24 * time.Hour,
			SQLite: SQLiteConfig{
				Path: defaultSQLitePath(),
			},
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "pdftext:",
			},
		},
	}
}

// Load reads configuration from a YAML file and applies environment
// overrides. An empty path falls back to $PDFTEXT_CONFIG; with neither set
// only defaults and environment are used.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("PDFTEXT_CONFIG")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Cache.Driver {
	case CacheDriverNone, CacheDriverSQLite, CacheDriverRedis:
	default:
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}

	if c.Cache.Driver == CacheDriverSQLite && c.Cache.SQLite.Path == "" {
		return fmt.Errorf("cache.sqlite.path is required for the sqlite driver")
	}

	if c.Cache.Driver == CacheDriverRedis && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for the redis driver")
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	return nil
}

// CacheEnabled reports whether a cache driver is configured.
func (c *Config) CacheEnabled() bool {
	return c.Cache.Driver != CacheDriverNone
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PDFTEXT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("PDFTEXT_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if v := os.Getenv("PDFTEXT_CACHE_DRIVER"); v != "" {
		cfg.Cache.Driver = v
	}

	if v := os.Getenv("PDFTEXT_CACHE_PATH"); v != "" {
		cfg.Cache.SQLite.Path = v
	}

	if v := os.Getenv("PDFTEXT_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse PDFTEXT_CACHE_TTL: %w", err)
		}
		cfg.Cache.TTL = ttl
	}

	if v := os.Getenv("PDFTEXT_REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = strings.TrimPrefix(v, "redis://")
	}

	if v := os.Getenv("PDFTEXT_REDIS_PASSWORD"); v != "" {
		cfg.Cache.Redis.Password = v
	}

	if v := os.Getenv("PDFTEXT_LEGACY_EXIT_CODES"); v != "" {
		legacy, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse PDFTEXT_LEGACY_EXIT_CODES: %w", err)
		}
		cfg.LegacyExitCodes = legacy
	}

	return nil
}

func defaultSQLitePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "pdftext", "cache.db")
}
