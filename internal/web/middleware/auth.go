package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/badancup/internal/middleware"
	"github.com/mcoot/badancup/internal/services/auth"
	"github.com/mcoot/badancup/internal/web/templates/layout"
	"github.com/mcoot/badancup/internal/web/templates/pages"
)

type contextKey string

const (
	accessCodeContextKey contextKey = "accessCode"
)

// GetAccessCode returns the admin code accepted for this request, or ""
func GetAccessCode(ctx context.Context) string {
	code, _ := ctx.Value(accessCodeContextKey).(string)
	return code
}

// Admin returns middleware that requires the shared access code.
// Without it the access prompt is rendered with 401.
func Admin(gate *auth.Gate, logger *slog.Logger) func(http.Handler) http.Handler {
	prompt := templ.Handler(
		pages.AdminPrompt(layout.PageData{Title: "Admin"}),
		templ.WithStatus(http.StatusUnauthorized),
	)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := middleware.AccessCode(r)
			if err := gate.Check(code); err != nil {
				if code != "" {
					logger.Warn("rejected admin access code",
						slog.String("path", r.URL.Path),
						slog.String("client_ip", middleware.ClientIP(r)),
					)
				}
				prompt.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), accessCodeContextKey, code)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
