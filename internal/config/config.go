package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/netip"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mcoot/badancup/internal/middleware"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
	StorageTypeRedis  = "redis"
)

// Log format constants
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config is the server configuration, read from the environment
type Config struct {
	Host string `env:"HOST"`
	Port int    `env:"PORT" envDefault:"3000"`

	// AdminCode gates /admin and /admin/export
	AdminCode string `env:"ADMIN_CODE" envDefault:"BADAN2025"`

	StorageType  string `env:"STORAGE_TYPE" envDefault:"sqlite"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"players.db"`
	RedisURL     string `env:"REDIS_URL"`

	// Villages overrides the built-in village list (comma separated)
	Villages []string `env:"VILLAGES" envSeparator:","`
	// VillagesFile overrides the built-in village list from a file, one per line
	VillagesFile string `env:"VILLAGES_FILE"`

	StaticDir string `env:"STATIC_DIR"`

	// TrustedProxies lists reverse proxy addresses or CIDRs whose
	// X-Forwarded-For headers are believed (comma separated)
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads an optional .env file and then parses the environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !isNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse reads the configuration from the environment only
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the server cannot start without
func (c Config) Validate() error {
	switch c.StorageType {
	case StorageTypeMemory, StorageTypeSQLite:
	case StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be 'memory', 'sqlite' or 'redis'", c.StorageType)
	}
	if c.AdminCode == "" {
		return errors.New("ADMIN_CODE must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		return err
	}
	switch c.LogFormat {
	case LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: must be 'json' or 'text'", c.LogFormat)
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// TrustedProxyPrefixes parses TRUSTED_PROXIES
func (c Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	return middleware.ParseTrustedProxies(c.TrustedProxies)
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
