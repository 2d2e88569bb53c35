package middleware

import "net/http"

// Where an admin access code may be supplied
const (
	AccessCodeParam  = "code"
	AccessCodeHeader = "X-Admin-Code"
)

// AccessCode returns the code from the query string, falling back to the header
func AccessCode(r *http.Request) string {
	if code := r.URL.Query().Get(AccessCodeParam); code != "" {
		return code
	}
	return r.Header.Get(AccessCodeHeader)
}
