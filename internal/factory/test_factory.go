package factory

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/badancup/internal/dependencies/mocks"
	"github.com/mcoot/badancup/internal/services/auth"
	"github.com/mcoot/badancup/internal/services/village"
	"github.com/mcoot/badancup/internal/storage/memory"
)

// TestAccessCode is the admin code used by NewTestApp
const TestAccessCode = "BADAN2025"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	MockClock *mocks.MockClock
	// MockStore wraps the in-memory store so tests can inject failures
	MockStore *mocks.MockStore
}

// NewTestApp creates an App backed by an in-memory store and a clock that
// advances one second per registration
func NewTestApp() *TestApp {
	return NewTestAppWithLogger(slog.New(slog.DiscardHandler))
}

// NewTestAppWithLogger is NewTestApp with a caller supplied logger
func NewTestAppWithLogger(logger *slog.Logger) *TestApp {
	mockClock := mocks.NewSteppingClock(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC), time.Second)
	mockStore := mocks.NewMockStore(memory.New(mockClock))

	gate, err := auth.New(auth.Config{AccessCode: TestAccessCode, Cost: bcrypt.MinCost})
	if err != nil {
		panic(err)
	}

	app := newWithDependencies(mockStore, mockClock, village.Default(), gate, logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockStore: mockStore,
	}
}
