package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/badancup/internal/dependencies/mocks"
	"github.com/mcoot/badancup/internal/model"
)

type StoreSuite struct {
	suite.Suite
	path  string
	clock *mocks.MockClock
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "players.db")
	s.clock = mocks.NewSteppingClock(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC), time.Second)

	store, err := Open(s.path, s.clock)
	s.Require().NoError(err)
	s.store = store
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

func (s *StoreSuite) insert(p *model.NewPlayer) *model.Player {
	player, err := s.store.InsertPlayer(s.ctx, p)
	s.Require().NoError(err)
	return player
}

func (s *StoreSuite) TestOpenUsesWAL() {
	var mode string
	err := s.store.sqlDB.QueryRowContext(s.ctx, `PRAGMA journal_mode`).Scan(&mode)
	s.Require().NoError(err)
	s.Equal("wal", mode)
}

func (s *StoreSuite) TestInsertAndList() {
	phone := "0501234567"
	ip := "192.0.2.10"
	inserted := s.insert(&model.NewPlayer{Name: "Ali", Phone: &phone, Village: "Badan", IP: &ip})

	s.Equal(model.PlayerID(1), inserted.ID)
	s.Equal(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC), inserted.CreatedAt)

	players, err := s.store.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1)

	got := players[0]
	s.Equal(inserted.ID, got.ID)
	s.Equal("Ali", got.Name)
	s.Equal("0501234567", model.StringValue(got.Phone))
	s.Equal("Badan", got.Village)
	s.Nil(got.Team)
	s.Equal("192.0.2.10", model.StringValue(got.IP))
	s.True(inserted.CreatedAt.Equal(got.CreatedAt))
}

func (s *StoreSuite) TestInsertDuplicateReturnsConflict() {
	s.insert(&model.NewPlayer{Name: "Ali", Village: "Badan"})

	_, err := s.store.InsertPlayer(s.ctx, &model.NewPlayer{Name: "Ali", Village: "Badan"})
	s.ErrorIs(err, model.ErrDuplicatePlayer)

	count, err := s.store.CountPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *StoreSuite) TestConcurrentDuplicateInsertsStoreOneRecord() {
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.InsertPlayer(s.ctx, &model.NewPlayer{Name: "Ali", Village: "Badan"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, model.ErrDuplicatePlayer)
	}
	s.Equal(1, succeeded)
}

func (s *StoreSuite) TestPlayerExists() {
	s.insert(&model.NewPlayer{Name: "Ali", Village: "Badan"})

	exists, err := s.store.PlayerExists(s.ctx, "Ali", "Badan")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.store.PlayerExists(s.ctx, "ALI", "Badan")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StoreSuite) TestListNewestFirst() {
	for _, name := range []string{"Ali", "Omar", "Saad", "Fahad"} {
		s.insert(&model.NewPlayer{Name: name, Village: "Badan"})
	}

	players, err := s.store.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 4)
	for i := 1; i < len(players); i++ {
		s.Greater(players[i-1].ID, players[i].ID)
	}
	s.Equal("Fahad", players[0].Name)
}

func (s *StoreSuite) TestDataSurvivesReopen() {
	s.insert(&model.NewPlayer{Name: "Ali", Village: "Badan"})
	s.Require().NoError(s.store.Close())

	reopened, err := Open(s.path, s.clock)
	s.Require().NoError(err)
	s.store = reopened

	players, err := reopened.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal("Ali", players[0].Name)

	next := s.insert(&model.NewPlayer{Name: "Omar", Village: "Badan"})
	s.Equal(model.PlayerID(2), next.ID)
}

func (s *StoreSuite) TestClosedStoreReportsFailure() {
	s.Require().NoError(s.store.Close())

	_, err := s.store.InsertPlayer(s.ctx, &model.NewPlayer{Name: "Ali", Village: "Badan"})
	s.Error(err)
	s.NotErrorIs(err, model.ErrDuplicatePlayer)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ", nil)
	require.Error(t, err)
}

func TestOpenReportsExistingDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.db")

	legacy, err := sql.Open("sqlite", "file:"+path)
	require.NoError(t, err)
	_, err = legacy.Exec(`CREATE TABLE players (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		phone TEXT,
		village TEXT NOT NULL,
		team TEXT,
		ip TEXT,
		created_at TEXT DEFAULT (datetime('now'))
	)`)
	require.NoError(t, err)
	_, err = legacy.Exec(`INSERT INTO players (name, village) VALUES ('Ali', 'Badan'), ('Ali', 'Badan')`)
	require.NoError(t, err)
	require.NoError(t, legacy.Close())

	_, err = Open(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate (name, village) rows")
}
