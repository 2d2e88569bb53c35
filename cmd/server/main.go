package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/mcoot/badancup/internal/api"
	"github.com/mcoot/badancup/internal/config"
	"github.com/mcoot/badancup/internal/factory"
	"github.com/mcoot/badancup/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	app, err := factory.New(factory.FromEnv(cfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close store", slog.String("error", err.Error()))
		}
	}()

	trusted, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		logger.Error("invalid trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Registration:   app.Registration,
		Roster:         app.Roster,
		Gate:           app.Gate,
		TrustedProxies: trusted,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		Registration:   app.Registration,
		Roster:         app.Roster,
		Gate:           app.Gate,
		TrustedProxies: trusted,
		StaticDir:      findStaticDir(cfg.StaticDir),
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(mux, serverConfig, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("Badan Cup running", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// newLogger builds a JSON logger, or a colourised text logger for LOG_FORMAT=text
func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	if cfg.LogFormat == config.LogFormatText {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      cfg.SlogLevel(),
			TimeFormat: time.Kitchen,
			NoColor:    !isTerminal(w),
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// findStaticDir returns configured, or the first existing default location,
// or "" when there are no static files to serve
func findStaticDir(configured string) string {
	if configured != "" {
		return configured
	}

	candidates := []string{
		"public",
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "public"),
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}
