// Package cache stores finished extractions so repeat runs over the same
// bytes skip decoding.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spherical/pdftext/internal/config"
)

// ErrCacheMiss indicates a cache miss.
var ErrCacheMiss = errors.New("cache miss")

// Client defines the cache interface.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// New opens the cache selected by cfg.Driver. The none driver yields a
// client that never hits. ctx bounds connection setup.
func New(ctx context.Context, cfg config.CacheConfig) (Client, error) {
	switch cfg.Driver {
	case config.CacheDriverNone, "":
		return Nop{}, nil
	case config.CacheDriverSQLite:
		return NewSQLiteClient(cfg.SQLite.Path)
	case config.CacheDriverRedis:
		return NewRedisClient(ctx, RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown cache driver: %s", cfg.Driver)
	}
}

// Key derives the cache key for a file: the engine name plus the SHA-256 of
// the file contents. The path itself is not part of the key.
func Key(engine, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}

	return engine + ":" + hex.EncodeToString(h.Sum(nil)), nil
}

// Nop is a Client that stores nothing.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, error) { return nil, ErrCacheMiss }

func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Nop) Close() error { return nil }
