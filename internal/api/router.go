package api

import (
	"log/slog"
	"net/http"
	"net/netip"

	"github.com/gorilla/mux"

	"github.com/mcoot/badancup/internal/api/handler"
	"github.com/mcoot/badancup/internal/api/middleware"
	"github.com/mcoot/badancup/internal/services/auth"
	"github.com/mcoot/badancup/internal/services/registration"
	"github.com/mcoot/badancup/internal/services/roster"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Registration   *registration.Service
	Roster         *roster.Service
	Gate           *auth.Gate
	// TrustedProxies may set X-Forwarded-For; empty means use the peer address
	TrustedProxies []netip.Prefix
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.Registration, cfg.Roster)
	healthHandler := handler.NewHealthHandler(cfg.Roster, cfg.Registration.Villages())

	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	adminMiddleware := middleware.Admin(cfg.Gate)

	r.Use(recoveryMiddleware)
	r.Use(middleware.RealIP(cfg.TrustedProxies))
	r.Use(loggingMiddleware)

	// Unversioned village list used by the registration page
	r.HandleFunc("/api/villages", healthHandler.Villages).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/villages", healthHandler.Villages).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.Register).Methods(http.MethodPost)

	// Admin routes
	admin := api.NewRoute().Subrouter()
	admin.Use(adminMiddleware)
	admin.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)

	return r
}
