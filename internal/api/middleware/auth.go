package middleware

import (
	"net/http"

	"github.com/mcoot/badancup/internal/api/apierr"
	"github.com/mcoot/badancup/internal/middleware"
	"github.com/mcoot/badancup/internal/services/auth"
)

// Admin creates middleware requiring the shared admin access code, from the
// "code" query parameter or the X-Admin-Code header
func Admin(gate *auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := gate.Check(middleware.AccessCode(r)); err != nil {
				apierr.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
