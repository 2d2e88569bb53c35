package web

import (
	"log/slog"
	"net/http"
	"net/netip"

	"github.com/gorilla/mux"

	"github.com/mcoot/badancup/internal/services/auth"
	"github.com/mcoot/badancup/internal/services/registration"
	"github.com/mcoot/badancup/internal/services/roster"
	"github.com/mcoot/badancup/internal/web/handler"
	"github.com/mcoot/badancup/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	Registration   *registration.Service
	Roster         *roster.Service
	Gate           *auth.Gate
	// TrustedProxies may set X-Forwarded-For; empty means use the peer address
	TrustedProxies []netip.Prefix
	StaticDir      string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RealIP(cfg.TrustedProxies))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.SecureHeaders)

	villages := cfg.Registration.Villages()
	homeHandler := handler.NewHomeHandler(villages)
	registerHandler := handler.NewRegisterHandler(cfg.Registration, cfg.Logger)
	adminHandler := handler.NewAdminHandler(cfg.Roster, cfg.Logger)

	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes
	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/register", registerHandler.Form).Methods(http.MethodGet)
	r.HandleFunc("/register", registerHandler.Submit).Methods(http.MethodPost)
	r.HandleFunc("/thankyou", homeHandler.ThankYou).Methods(http.MethodGet)

	// Admin routes (require the access code)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Admin(cfg.Gate, cfg.Logger))
	admin.HandleFunc("", adminHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/export", adminHandler.Export).Methods(http.MethodGet)

	return r
}
