package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, CacheDriverNone, cfg.Cache.Driver)
	assert.False(t, cfg.CacheEnabled())
	assert.False(t, cfg.LegacyExitCodes)
	assert.Equal(t, "disabled", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("PDFTEXT_CONFIG", "")
	path := filepath.Join(t.TempDir(), "pdftext.yaml")
	data := `
log:
  level: debug
  format: json
cache:
  driver: sqlite
  ttl: 1h
  sqlite:
    path: /tmp/pdftext-test.db
legacy_exit_codes: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, CacheDriverSQLite, cfg.Cache.Driver)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "/tmp/pdftext-test.db", cfg.Cache.SQLite.Path)
	assert.True(t, cfg.LegacyExitCodes)
	assert.True(t, cfg.CacheEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PDFTEXT_CONFIG", "")
	t.Setenv("PDFTEXT_CACHE_DRIVER", "redis")
	t.Setenv("PDFTEXT_REDIS_ADDR", "redis://cache:6380")
	t.Setenv("PDFTEXT_CACHE_TTL", "30m")
	t.Setenv("PDFTEXT_LEGACY_EXIT_CODES", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, CacheDriverRedis, cfg.Cache.Driver)
	assert.Equal(t, "cache:6380", cfg.Cache.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.LegacyExitCodes)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		path string
	}{
		{
			name: "missing file",
			path: filepath.Join(os.TempDir(), "does-not-exist-pdftext.yaml"),
		},
		{
			name: "unknown cache driver",
			env:  map[string]string{"PDFTEXT_CACHE_DRIVER": "memcached"},
		},
		{
			name: "bad ttl",
			env:  map[string]string{"PDFTEXT_CACHE_TTL": "soon"},
		},
		{
			name: "bad legacy flag",
			env:  map[string]string{"PDFTEXT_LEGACY_EXIT_CODES": "maybe"},
		},
		{
			name: "bad log format",
			env:  map[string]string{"PDFTEXT_LOG_FORMAT": "xml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PDFTEXT_CONFIG", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestValidate_DriverRequirements(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Driver = CacheDriverSQLite
	cfg.Cache.SQLite.Path = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Cache.Driver = CacheDriverRedis
	cfg.Cache.Redis.Addr = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Cache.TTL = -time.Second
	assert.Error(t, cfg.Validate())
}
