package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	for _, k := range []string{"HOST", "PORT", "ADMIN_CODE", "STORAGE_TYPE", "DATABASE_PATH", "REDIS_URL", "VILLAGES", "VILLAGES_FILE", "LOG_LEVEL", "LOG_FORMAT", "TRUSTED_PROXIES"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "BADAN2025", cfg.AdminCode)
	assert.Equal(t, StorageTypeSQLite, cfg.StorageType)
	assert.Equal(t, "players.db", cfg.DatabasePath)
	assert.Empty(t, cfg.Villages)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ADMIN_CODE", "secret")
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("VILLAGES", "Badan,Al-Hamra")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,127.0.0.1")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "secret", cfg.AdminCode)
	assert.Equal(t, StorageTypeMemory, cfg.StorageType)
	assert.Equal(t, []string{"Badan", "Al-Hamra"}, cfg.Villages)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, LogFormatText, cfg.LogFormat)

	prefixes, err := cfg.TrustedProxyPrefixes()
	require.NoError(t, err)
	require.Len(t, prefixes, 2)
	assert.Equal(t, "10.0.0.0/8", prefixes[0].String())
	assert.Equal(t, "127.0.0.1/32", prefixes[1].String())
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("BADAN_TEST_ONLY=1\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("BADAN_TEST_ONLY") })
	t.Setenv("STORAGE_TYPE", "memory")

	_, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1", os.Getenv("BADAN_TEST_ONLY"))
}

func TestLoadMissingFileIsIgnored(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "memory")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Port: 3000, AdminCode: "x", StorageType: StorageTypeMemory, LogFormat: LogFormatJSON}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown storage", func(c *Config) { c.StorageType = "postgres" }, true},
		{"redis without url", func(c *Config) { c.StorageType = StorageTypeRedis }, true},
		{"redis with url", func(c *Config) { c.StorageType = StorageTypeRedis; c.RedisURL = "redis://localhost:6379/0" }, false},
		{"empty admin code", func(c *Config) { c.AdminCode = "" }, true},
		{"bad port", func(c *Config) { c.Port = 0 }, true},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"bad trusted proxy", func(c *Config) { c.TrustedProxies = []string{"proxy.local"} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlogLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "loud"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, Config{LogLevel: "WARN"}.SlogLevel())
}
