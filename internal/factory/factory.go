package factory

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/badancup/internal/config"
	"github.com/mcoot/badancup/internal/dependencies/clock"
	"github.com/mcoot/badancup/internal/services/auth"
	"github.com/mcoot/badancup/internal/services/registration"
	"github.com/mcoot/badancup/internal/services/roster"
	"github.com/mcoot/badancup/internal/services/village"
	"github.com/mcoot/badancup/internal/storage"
	"github.com/mcoot/badancup/internal/storage/memory"
	redisstorage "github.com/mcoot/badancup/internal/storage/redis"
	"github.com/mcoot/badancup/internal/storage/sqlite"
)

// App contains all wired application components
type App struct {
	Store storage.PlayerStore
	Clock clock.Clock

	Villages     *village.Registry
	Registration *registration.Service
	Roster       *roster.Service
	Gate         *auth.Gate
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the backend ("sqlite", "memory" or "redis").
	// Empty means sqlite.
	StorageType string
	// DatabasePath is the SQLite file (sqlite only)
	DatabasePath string
	// RedisConfig holds connection settings (redis only)
	RedisConfig *redisstorage.Config

	// Villages replaces the built-in village list when non-empty
	Villages []string
	// VillagesFile replaces the built-in village list from a file. Takes
	// precedence over Villages.
	VillagesFile string

	// AuthConfig configures the admin access gate. A zero value means
	// auth.DefaultConfig().
	AuthConfig auth.Config

	// Logger is the application logger. Nil discards output.
	Logger *slog.Logger
}

// FromEnv maps the server configuration onto a factory Config
func FromEnv(cfg config.Config, logger *slog.Logger) Config {
	out := Config{
		StorageType:  cfg.StorageType,
		DatabasePath: cfg.DatabasePath,
		Villages:     cfg.Villages,
		VillagesFile: cfg.VillagesFile,
		AuthConfig:   auth.Config{AccessCode: cfg.AdminCode},
		Logger:       logger,
	}
	if cfg.StorageType == config.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		out.RedisConfig = &redisCfg
	}
	return out
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	villages, err := loadVillages(cfg)
	if err != nil {
		return nil, err
	}

	authCfg := cfg.AuthConfig
	if authCfg.AccessCode == "" {
		authCfg.AccessCode = auth.DefaultConfig().AccessCode
	}
	gate, err := auth.New(authCfg)
	if err != nil {
		return nil, fmt.Errorf("create access gate: %w", err)
	}

	clk := clock.New()
	store, err := openStore(cfg, clk)
	if err != nil {
		return nil, err
	}

	logger.Info("application initialised",
		slog.String("storage", storageTypeOrDefault(cfg.StorageType)),
		slog.Int("villages", villages.Len()),
	)

	return newWithDependencies(store, clk, villages, gate, logger), nil
}

// Close releases the store
func (a *App) Close() error {
	return a.Store.Close()
}

func openStore(cfg Config, clk clock.Clock) (storage.PlayerStore, error) {
	switch storageTypeOrDefault(cfg.StorageType) {
	case config.StorageTypeMemory:
		return memory.New(clk), nil
	case config.StorageTypeSQLite:
		path := cfg.DatabasePath
		if path == "" {
			path = "players.db"
		}
		store, err := sqlite.Open(path, clk)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		store, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'sqlite', 'memory' or 'redis'", cfg.StorageType)
	}
}

func loadVillages(cfg Config) (*village.Registry, error) {
	switch {
	case cfg.VillagesFile != "":
		villages, err := village.LoadFromFile(cfg.VillagesFile)
		if err != nil {
			return nil, fmt.Errorf("load villages: %w", err)
		}
		return villages, nil
	case len(cfg.Villages) > 0:
		return village.New(cfg.Villages), nil
	default:
		return village.Default(), nil
	}
}

func storageTypeOrDefault(t string) string {
	if t == "" {
		return config.StorageTypeSQLite
	}
	return t
}

// newWithDependencies creates an App around already constructed dependencies
func newWithDependencies(store storage.PlayerStore, clk clock.Clock, villages *village.Registry, gate *auth.Gate, logger *slog.Logger) *App {
	return &App{
		Store:        store,
		Clock:        clk,
		Villages:     villages,
		Registration: registration.New(store, villages, logger),
		Roster:       roster.New(store, logger),
		Gate:         gate,
	}
}
