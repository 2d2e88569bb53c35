package model

import (
	"strings"
	"time"
)

// TimestampLayout is the UTC layout used when a creation time is stored
// as text or exported
const TimestampLayout = "2006-01-02 15:04:05"

// PlayerID is the store-assigned surrogate key of a registration
type PlayerID int64

// Player is a single registration on the event roster
type Player struct {
	ID        PlayerID  `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Village   string    `json:"village"`
	Team      *string   `json:"team"`
	IP        *string   `json:"ip,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPlayer is the payload for inserting a registration.
// ID and CreatedAt are assigned by the store.
type NewPlayer struct {
	Name    string
	Phone   *string
	Village string
	Team    *string
	IP      *string
}

// RosterKey identifies a player for duplicate detection.
// Phone is deliberately not part of it.
type RosterKey struct {
	Name    string
	Village string
}

// Key returns the roster key of the player
func (p *Player) Key() RosterKey {
	return RosterKey{Name: p.Name, Village: p.Village}
}

// Key returns the roster key of the payload
func (p *NewPlayer) Key() RosterKey {
	return RosterKey{Name: p.Name, Village: p.Village}
}

// OptionalString trims s and returns nil if nothing is left
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StringValue returns the pointed-to string, or "" for nil
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
