package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/badancup/internal/api/request"
	"github.com/mcoot/badancup/internal/api/response"
	"github.com/mcoot/badancup/internal/middleware"
	"github.com/mcoot/badancup/internal/services/registration"
	"github.com/mcoot/badancup/internal/services/roster"
)

// maxBodyBytes bounds a registration request body
const maxBodyBytes = 16 << 10

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	registration *registration.Service
	roster       *roster.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(registrationService *registration.Service, rosterService *roster.Service) *PlayerHandler {
	return &PlayerHandler{
		registration: registrationService,
		roster:       rosterService,
	}
}

// Register handles POST /api/v1/players
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterPlayerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.registration.Register(r.Context(), req.Submission(middleware.ClientIP(r)))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Registered{
		Status: "registered",
		Player: response.PlayerFromModel(player),
	})
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.roster.List(r.Context())
	if err != nil {
		WriteError(w, NewInternalError())
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerListFromModel(players))
}
