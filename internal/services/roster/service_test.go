package roster

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/badancup/internal/dependencies/mocks"
	"github.com/mcoot/badancup/internal/model"
	"github.com/mcoot/badancup/internal/storage/memory"
	"github.com/mcoot/badancup/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	store   *mocks.MockStore
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	clk := mocks.NewSteppingClock(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC), time.Minute)
	s.store = mocks.NewMockStore(memory.New(clk))
	s.service = New(s.store, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) seed(names ...string) {
	for _, name := range names {
		_, err := s.store.InsertPlayer(s.ctx, &model.NewPlayer{Name: name, Village: "Badan"})
		s.Require().NoError(err)
	}
}

func (s *ServiceSuite) TestListNewestFirst() {
	s.seed("Ali", "Omar")

	players, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("Omar", players[0].Name)
}

func (s *ServiceSuite) TestCount() {
	s.seed("Ali", "Omar", "Saad")

	n, err := s.service.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, n)
}

func (s *ServiceSuite) TestExportFollowsListOrder() {
	s.seed("Ali", "Omar")

	var buf bytes.Buffer
	written, err := s.service.Export(s.ctx, &buf)
	s.Require().NoError(err)
	s.Equal(int64(buf.Len()), written)
	s.Equal(
		"id,name,phone,village,team,created_at\n"+
			"2,Omar,,Badan,,2025-03-01 18:01:00\n"+
			"1,Ali,,Badan,,2025-03-01 18:00:00\n",
		buf.String(),
	)
}

func (s *ServiceSuite) TestListFailureIsWrapped() {
	boom := errors.New("read failed")
	s.store.ListErr = boom

	_, err := s.service.List(s.ctx)
	s.ErrorIs(err, boom)

	var buf bytes.Buffer
	written, err := s.service.Export(s.ctx, &buf)
	s.ErrorIs(err, boom)
	s.Zero(written)
	s.Empty(buf.String())
}
