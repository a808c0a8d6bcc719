package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS extractions (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER NOT NULL DEFAULT 0
)`

// SQLiteClient implements cache using a local SQLite file.
type SQLiteClient struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteClient opens (creating if needed) the cache database at path.
// ":memory:" gives a private in-memory cache.
func NewSQLiteClient(path string) (*SQLiteClient, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache: %w", err)
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite cache schema: %w", err)
	}

	c := &SQLiteClient{db: db, now: time.Now}
	if _, err := c.Purge(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return c, nil
}

// Get retrieves a value from cache. Expired rows count as misses.
func (c *SQLiteClient) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	var expiresAt int64

	err := c.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM extractions WHERE key = ?`, key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite get: %w", err)
	}

	if expiresAt != 0 && c.now().UnixNano() >= expiresAt {
		return nil, ErrCacheMiss
	}

	return value, nil
}

// Set stores a value in cache with TTL. A zero TTL never expires.
func (c *SQLiteClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = c.now().Add(ttl).UnixNano()
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO extractions (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite set: %w", err)
	}
	return nil
}

// Purge deletes expired rows and returns how many were removed.
func (c *SQLiteClient) Purge(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM extractions WHERE expires_at != 0 AND expires_at <= ?`, c.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("sqlite purge: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database.
func (c *SQLiteClient) Close() error {
	return c.db.Close()
}
