package middleware

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/badancup/internal/middleware"
	"github.com/mcoot/badancup/internal/services/registration"
	"github.com/mcoot/badancup/internal/web/templates/layout"
	"github.com/mcoot/badancup/internal/web/templates/pages"
)

// Recovery creates panic recovery middleware for the web interface.
// Renders the HTML error page on panic.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	templ.Handler(
		pages.Error(layout.PageData{Title: "خطأ"}, registration.MessagePersistence),
		templ.WithStatus(http.StatusInternalServerError),
	).ServeHTTP(w, r)
}
