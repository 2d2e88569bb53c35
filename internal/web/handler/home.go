package handler

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/badancup/internal/services/village"
	"github.com/mcoot/badancup/internal/web/templates/layout"
	"github.com/mcoot/badancup/internal/web/templates/pages"
)

// HomeHandler handles the landing and confirmation pages
type HomeHandler struct {
	villages *village.Registry
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(villages *village.Registry) *HomeHandler {
	return &HomeHandler{villages: villages}
}

// Home renders the landing page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.HomeData{
		PageData:      layout.PageData{},
		VillagesCount: h.villages.Len(),
	}
	templ.Handler(pages.Home(data)).ServeHTTP(w, r)
}

// ThankYou renders the registration confirmation
func (h *HomeHandler) ThankYou(w http.ResponseWriter, r *http.Request) {
	templ.Handler(pages.ThankYou(layout.PageData{Title: "شكراً"})).ServeHTTP(w, r)
}
