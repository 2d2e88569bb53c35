package registration

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mcoot/badancup/internal/model"
	"github.com/mcoot/badancup/internal/services/village"
	"github.com/mcoot/badancup/internal/storage"
)

// Submission is one registration attempt as received from a client
type Submission struct {
	Name    string
	Phone   string
	Village string
	Team    string

	// IP is the caller's network address, filled in by the transport
	IP string
}

// Form returns the user-editable values of the submission
func (s Submission) Form() Form {
	return Form{Name: s.Name, Phone: s.Phone, Village: s.Village, Team: s.Team}
}

// Service runs the validate, duplicate check and persist steps of a registration
type Service struct {
	store    storage.PlayerStore
	villages *village.Registry
	logger   *slog.Logger
}

// New creates a new registration Service
func New(store storage.PlayerStore, villages *village.Registry, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		villages: villages,
		logger:   logger.With(slog.String("component", "registration")),
	}
}

// Villages returns the registry submissions are validated against
func (s *Service) Villages() *village.Registry {
	return s.villages
}

// Register validates and stores a submission. On success it returns the
// stored player; every failure is a *Error carrying the submitted form.
func (s *Service) Register(ctx context.Context, sub Submission) (*model.Player, error) {
	form := sub.Form()

	name := strings.TrimSpace(sub.Name)
	if name == "" || sub.Village == "" || !s.villages.Contains(sub.Village) {
		return nil, newError(KindValidation, form, nil)
	}

	exists, err := s.store.PlayerExists(ctx, name, sub.Village)
	if err != nil {
		s.logger.Error("duplicate check failed",
			slog.String("village", sub.Village),
			slog.String("error", err.Error()),
		)
		return nil, newError(KindPersistence, form, err)
	}
	if exists {
		return nil, newError(KindDuplicate, form, nil)
	}

	player, err := s.store.InsertPlayer(ctx, &model.NewPlayer{
		Name:    name,
		Phone:   model.OptionalString(sub.Phone),
		Village: sub.Village,
		Team:    model.OptionalString(sub.Team),
		IP:      model.OptionalString(sub.IP),
	})
	if err != nil {
		// Another request registered the same pair after our check
		if errors.Is(err, model.ErrDuplicatePlayer) {
			return nil, newError(KindDuplicate, form, nil)
		}
		s.logger.Error("failed to save player",
			slog.String("village", sub.Village),
			slog.String("error", err.Error()),
		)
		return nil, newError(KindPersistence, form, err)
	}

	s.logger.Info("player registered",
		slog.Int64("player_id", int64(player.ID)),
		slog.String("village", player.Village),
	)

	return player, nil
}
