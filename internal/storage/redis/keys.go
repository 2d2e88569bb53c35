package redis

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/badancup/internal/model"
)

type keys struct {
	prefix string
}

// sequenceKey holds the last assigned player ID (INCR)
func (k keys) sequenceKey() string {
	return fmt.Sprintf("%s:seq:player", k.prefix)
}

// playerKey returns the key of a player's JSON record
func (k keys) playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", k.prefix, id)
}

// playersIndexKey returns the ZSET of player keys scored by ID
func (k keys) playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", k.prefix)
}

// rosterKey returns the hash holding one claim field per (name, village)
func (k keys) rosterKey() string {
	return fmt.Sprintf("%s:idx:roster", k.prefix)
}

// rosterField encodes a (name, village) pair as a JSON array so that
// separators inside either value cannot collide
func rosterField(name, village string) string {
	b, _ := json.Marshal([2]string{village, name})
	return string(b)
}
