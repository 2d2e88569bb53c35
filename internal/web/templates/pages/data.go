package pages

import (
	"net/url"

	"github.com/mcoot/badancup/internal/model"
	"github.com/mcoot/badancup/internal/services/registration"
	"github.com/mcoot/badancup/internal/web/templates/layout"
)

// HomeData holds data for the landing page
type HomeData struct {
	layout.PageData
	VillagesCount int
}

// RegisterData holds data for the registration form
type RegisterData struct {
	layout.PageData
	Villages []string
	// Error is shown above the form when set
	Error string
	// Old repopulates the fields after a rejected submission
	Old registration.Form
}

// AdminData holds data for the roster listing
type AdminData struct {
	layout.PageData
	Players []*model.Player
	// AccessCode is carried into the export link
	AccessCode string
}

func exportURL(code string) string {
	return "/admin/export?code=" + url.QueryEscape(code)
}
