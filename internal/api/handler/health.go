package handler

import (
	"net/http"

	"github.com/mcoot/badancup/internal/api/response"
	"github.com/mcoot/badancup/internal/services/roster"
	"github.com/mcoot/badancup/internal/services/village"
)

// HealthHandler handles service status endpoints
type HealthHandler struct {
	roster   *roster.Service
	villages *village.Registry
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(rosterService *roster.Service, villages *village.Registry) *HealthHandler {
	return &HealthHandler{roster: rosterService, villages: villages}
}

// Health handles GET /api/v1/health. A failing store reports 500.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.roster.Count(r.Context())
	if err != nil {
		WriteError(w, NewInternalError())
		return
	}
	response.JSON(w, http.StatusOK, response.Health{Status: "ok", Players: count})
}

// Villages handles GET /api/v1/villages
func (h *HealthHandler) Villages(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, h.villages.Names())
}
