package memory

import (
	"context"
	"iter"
	"sync"

	"github.com/mcoot/badancup/internal/dependencies/clock"
	"github.com/mcoot/badancup/internal/model"
	"github.com/mcoot/badancup/internal/storage"
)

// Storage is an in-memory implementation of the player store
type Storage struct {
	clock clock.Clock

	mu      sync.RWMutex
	nextID  model.PlayerID
	players []*model.Player // ascending by ID
	roster  map[model.RosterKey]model.PlayerID
	closed  bool
}

// New creates a new in-memory storage instance
func New(clk clock.Clock) *Storage {
	if clk == nil {
		clk = clock.New()
	}
	return &Storage{
		clock:  clk,
		nextID: 1,
		roster: make(map[model.RosterKey]model.PlayerID),
	}
}

// Ensure Storage implements the interface
var _ storage.PlayerStore = (*Storage)(nil)

func (s *Storage) InsertPlayer(ctx context.Context, p *model.NewPlayer) (*model.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, model.ErrStoreClosed
	}

	key := p.Key()
	if _, ok := s.roster[key]; ok {
		return nil, model.ErrDuplicatePlayer
	}

	player := &model.Player{
		ID:        s.nextID,
		Name:      p.Name,
		Phone:     p.Phone,
		Village:   p.Village,
		Team:      p.Team,
		IP:        p.IP,
		CreatedAt: s.clock.Now(),
	}
	s.nextID++
	s.players = append(s.players, player)
	s.roster[key] = player.ID

	return copyPlayer(player), nil
}

func (s *Storage) PlayerExists(ctx context.Context, name, village string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false, model.ErrStoreClosed
	}
	_, ok := s.roster[model.RosterKey{Name: name, Village: village}]
	return ok, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return storage.Collect(s.StreamPlayers(ctx))
}

// StreamPlayers iterates over a snapshot taken when iteration starts
func (s *Storage) StreamPlayers(ctx context.Context) iter.Seq2[*model.Player, error] {
	return func(yield func(*model.Player, error) bool) {
		s.mu.RLock()
		if s.closed {
			s.mu.RUnlock()
			yield(nil, model.ErrStoreClosed)
			return
		}
		snapshot := make([]*model.Player, len(s.players))
		copy(snapshot, s.players)
		s.mu.RUnlock()

		for i := len(snapshot) - 1; i >= 0; i-- {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(copyPlayer(snapshot[i]), nil) {
				return
			}
		}
	}
}

func (s *Storage) CountPlayers(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, model.ErrStoreClosed
	}
	return len(s.players), nil
}

// Close marks the store closed; later calls fail with model.ErrStoreClosed
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func copyPlayer(p *model.Player) *model.Player {
	c := *p
	return &c
}
