package handler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/badancup/internal/services/registration"
	"github.com/mcoot/badancup/internal/services/roster"
	"github.com/mcoot/badancup/internal/web/middleware"
	"github.com/mcoot/badancup/internal/web/templates/layout"
	"github.com/mcoot/badancup/internal/web/templates/pages"
)

// AdminHandler handles the access-gated roster pages
type AdminHandler struct {
	roster *roster.Service
	logger *slog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(rosterService *roster.Service, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{roster: rosterService, logger: logger}
}

// List renders every registration, newest first
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.roster.List(r.Context())
	if err != nil {
		h.renderError(w, r)
		return
	}

	data := pages.AdminData{
		PageData:   layout.PageData{Title: "Admin"},
		Players:    players,
		AccessCode: middleware.GetAccessCode(r.Context()),
	}
	templ.Handler(pages.Admin(data)).ServeHTTP(w, r)
}

// Export streams the roster as a CSV attachment. A storage failure before
// any row goes out renders the error page; once rows have been flushed a
// failure truncates the file rather than changing the status.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+roster.ExportFilename+`"`)
	w.Header().Set("Cache-Control", "no-store")

	written, err := h.roster.Export(r.Context(), w)
	if err == nil {
		return
	}
	if written > 0 {
		h.logger.Warn("roster export ended early", slog.String("error", err.Error()))
		return
	}

	w.Header().Del("Content-Disposition")
	h.renderError(w, r)
}

func (h *AdminHandler) renderError(w http.ResponseWriter, r *http.Request) {
	templ.Handler(
		pages.Error(layout.PageData{Title: "خطأ"}, registration.MessagePersistence),
		templ.WithStatus(http.StatusInternalServerError),
	).ServeHTTP(w, r)
}
