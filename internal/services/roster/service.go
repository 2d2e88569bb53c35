package roster

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/badancup/internal/model"
	"github.com/mcoot/badancup/internal/storage"
)

// ExportFilename is the attachment name of the CSV download
const ExportFilename = "badan_players.csv"

// Service gives administrators read access to the roster
type Service struct {
	store  storage.PlayerStore
	logger *slog.Logger
}

// New creates a new roster Service
func New(store storage.PlayerStore, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With(slog.String("component", "roster")),
	}
}

// List returns every registration, newest first
func (s *Service) List(ctx context.Context) ([]*model.Player, error) {
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		s.logger.Error("failed to list players", slog.String("error", err.Error()))
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// Count returns the number of registrations
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.CountPlayers(ctx)
}

// Export streams the roster as CSV to w and reports how many bytes went out
func (s *Service) Export(ctx context.Context, w io.Writer) (int64, error) {
	written, err := WriteCSV(w, s.store.StreamPlayers(ctx))
	if err != nil {
		s.logger.Error("export failed",
			slog.String("error", err.Error()),
			slog.Int64("bytes_written", written),
		)
		return written, fmt.Errorf("export players: %w", err)
	}
	return written, nil
}
