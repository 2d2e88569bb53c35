package storage

import (
	"context"
	"iter"

	"github.com/mcoot/badancup/internal/model"
)

// PlayerStore defines the interface for roster persistence.
//
// Implementations enforce the (name, village) uniqueness rule atomically:
// InsertPlayer returns model.ErrDuplicatePlayer instead of creating a second
// record for the same pair, even when two inserts race.
type PlayerStore interface {
	// InsertPlayer stores a new registration and returns it with its
	// assigned ID and creation time
	InsertPlayer(ctx context.Context, p *model.NewPlayer) (*model.Player, error)

	// PlayerExists reports whether the exact (name, village) pair is stored
	PlayerExists(ctx context.Context, name, village string) (bool, error)

	// ListPlayers returns every registration, newest (highest ID) first
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// StreamPlayers yields the same records as ListPlayers without loading
	// them all up front. A storage error is yielded once and ends the sequence.
	StreamPlayers(ctx context.Context) iter.Seq2[*model.Player, error]

	// CountPlayers returns the number of registrations
	CountPlayers(ctx context.Context) (int, error)

	Close() error
}

// Collect drains a player sequence into a slice, stopping at the first error
func Collect(seq iter.Seq2[*model.Player, error]) ([]*model.Player, error) {
	players := []*model.Player{}
	for p, err := range seq {
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}
