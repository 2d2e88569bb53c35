package mocks

import (
	"context"
	"iter"
	"sync"

	"github.com/mcoot/badancup/internal/model"
	"github.com/mcoot/badancup/internal/storage"
)

// MockStore wraps a real PlayerStore, counting calls and injecting failures
type MockStore struct {
	storage.PlayerStore

	mu          sync.Mutex
	insertCalls int
	existsCalls int

	// InsertErr, ExistsErr and ListErr are returned instead of calling through when set
	InsertErr error
	ExistsErr error
	ListErr   error

	// ExistsOverride, when non-nil, replaces the result of PlayerExists
	ExistsOverride *bool
}

// Ensure MockStore implements PlayerStore
var _ storage.PlayerStore = (*MockStore)(nil)

// NewMockStore wraps store
func NewMockStore(store storage.PlayerStore) *MockStore {
	return &MockStore{PlayerStore: store}
}

func (m *MockStore) InsertPlayer(ctx context.Context, p *model.NewPlayer) (*model.Player, error) {
	m.mu.Lock()
	m.insertCalls++
	err := m.InsertErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.PlayerStore.InsertPlayer(ctx, p)
}

func (m *MockStore) PlayerExists(ctx context.Context, name, village string) (bool, error) {
	m.mu.Lock()
	m.existsCalls++
	err := m.ExistsErr
	override := m.ExistsOverride
	m.mu.Unlock()
	if err != nil {
		return false, err
	}
	if override != nil {
		return *override, nil
	}
	return m.PlayerStore.PlayerExists(ctx, name, village)
}

func (m *MockStore) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return storage.Collect(m.StreamPlayers(ctx))
}

func (m *MockStore) StreamPlayers(ctx context.Context) iter.Seq2[*model.Player, error] {
	m.mu.Lock()
	err := m.ListErr
	m.mu.Unlock()
	if err != nil {
		return func(yield func(*model.Player, error) bool) {
			yield(nil, err)
		}
	}
	return m.PlayerStore.StreamPlayers(ctx)
}

// InsertCalls returns how many times InsertPlayer was called
func (m *MockStore) InsertCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertCalls
}

// ExistsCalls returns how many times PlayerExists was called
func (m *MockStore) ExistsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.existsCalls
}
