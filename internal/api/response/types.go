package response

import (
	"github.com/mcoot/badancup/internal/model"
)

// Player represents a registration in API responses. The caller's IP is
// never exposed.
type Player struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone"`
	Village   string  `json:"village"`
	Team      *string `json:"team"`
	CreatedAt string  `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:        int64(p.ID),
		Name:      p.Name,
		Phone:     p.Phone,
		Village:   p.Village,
		Team:      p.Team,
		CreatedAt: p.CreatedAt.UTC().Format(model.TimestampLayout),
	}
}

// PlayerList is the response for GET /api/v1/players
type PlayerList struct {
	Count   int      `json:"count"`
	Players []Player `json:"players"`
}

// PlayerListFromModel converts players, keeping their order
func PlayerListFromModel(players []*model.Player) PlayerList {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return PlayerList{Count: len(out), Players: out}
}

// Registered is the response for a successful registration
type Registered struct {
	Status string `json:"status"`
	Player Player `json:"player"`
}

// Health is the response for GET /api/v1/health
type Health struct {
	Status  string `json:"status"`
	Players int    `json:"players"`
}
