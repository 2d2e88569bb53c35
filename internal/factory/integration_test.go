package factory

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/badancup/internal/config"
	"github.com/mcoot/badancup/internal/services/auth"
	"github.com/mcoot/badancup/internal/services/registration"
	redisstorage "github.com/mcoot/badancup/internal/storage/redis"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TestRegisterListExport() {
	_, err := s.app.Registration.Register(s.ctx, registration.Submission{Name: "Ali", Village: "Badan", Phone: "0501234567"})
	s.Require().NoError(err)
	_, err = s.app.Registration.Register(s.ctx, registration.Submission{Name: "Omar", Village: "Al-Hamra", Team: "Falcons"})
	s.Require().NoError(err)

	players, err := s.app.Roster.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("Omar", players[0].Name)
	s.Equal("Ali", players[1].Name)

	var buf bytes.Buffer
	written, err := s.app.Roster.Export(s.ctx, &buf)
	s.Require().NoError(err)
	s.Equal(int64(buf.Len()), written)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	s.Len(lines, 3)
	s.Equal("id,name,phone,village,team,created_at", lines[0])
	s.True(strings.HasPrefix(lines[1], "2,Omar,,Al-Hamra,Falcons,"))
}

func (s *IntegrationSuite) TestDuplicateRejected() {
	sub := registration.Submission{Name: "Ali", Village: "Badan"}
	_, err := s.app.Registration.Register(s.ctx, sub)
	s.Require().NoError(err)

	_, err = s.app.Registration.Register(s.ctx, sub)
	s.ErrorIs(err, registration.ErrDuplicate)

	count, err := s.app.Roster.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *IntegrationSuite) TestPersistenceFailure() {
	s.app.MockStore.InsertErr = errors.New("disk full")

	_, err := s.app.Registration.Register(s.ctx, registration.Submission{Name: "Ali", Village: "Badan"})
	s.ErrorIs(err, registration.ErrPersistence)
}

func (s *IntegrationSuite) TestGateUsesTestCode() {
	s.NoError(s.app.Gate.Check(TestAccessCode))
	s.ErrorIs(s.app.Gate.Check("badan2025"), auth.ErrInvalidAccessCode)
}

type FactorySuite struct {
	suite.Suite
	minCost auth.Config
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}

func (s *FactorySuite) SetupTest() {
	s.minCost = auth.Config{AccessCode: "secret", Cost: bcrypt.MinCost}
}

func (s *FactorySuite) TestMemoryStorage() {
	app, err := New(Config{StorageType: config.StorageTypeMemory, AuthConfig: s.minCost})
	s.Require().NoError(err)
	defer app.Close()

	s.Equal(8, app.Villages.Len())
	s.NoError(app.Gate.Check("secret"))
}

func (s *FactorySuite) TestSQLiteStorage() {
	path := filepath.Join(s.T().TempDir(), "players.db")
	app, err := New(Config{StorageType: config.StorageTypeSQLite, DatabasePath: path, AuthConfig: s.minCost})
	s.Require().NoError(err)

	_, err = app.Registration.Register(context.Background(), registration.Submission{Name: "Ali", Village: "Badan"})
	s.Require().NoError(err)
	s.Require().NoError(app.Close())

	_, err = os.Stat(path)
	s.NoError(err)
}

func (s *FactorySuite) TestRedisStorage() {
	mr := miniredis.RunT(s.T())
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mr.Addr()

	app, err := New(Config{StorageType: config.StorageTypeRedis, RedisConfig: &redisCfg, AuthConfig: s.minCost})
	s.Require().NoError(err)
	defer app.Close()

	_, err = app.Registration.Register(context.Background(), registration.Submission{Name: "Ali", Village: "Badan"})
	s.Require().NoError(err)
	s.True(mr.Exists("badan:player:1"))
}

func (s *FactorySuite) TestRedisRequiresConfig() {
	_, err := New(Config{StorageType: config.StorageTypeRedis, AuthConfig: s.minCost})
	s.Error(err)
}

func (s *FactorySuite) TestInvalidStorage() {
	_, err := New(Config{StorageType: "postgres", AuthConfig: s.minCost})
	s.ErrorContains(err, "invalid StorageType")
}

func (s *FactorySuite) TestVillageOverrides() {
	app, err := New(Config{StorageType: config.StorageTypeMemory, Villages: []string{"Badan", "Qarya"}, AuthConfig: s.minCost})
	s.Require().NoError(err)
	s.Equal([]string{"Badan", "Qarya"}, app.Villages.Names())

	path := filepath.Join(s.T().TempDir(), "villages.txt")
	s.Require().NoError(os.WriteFile(path, []byte("# list\nOne\n\nTwo\n"), 0o600))
	app, err = New(Config{StorageType: config.StorageTypeMemory, Villages: []string{"ignored"}, VillagesFile: path, AuthConfig: s.minCost})
	s.Require().NoError(err)
	s.Equal([]string{"One", "Two"}, app.Villages.Names())
}

func (s *FactorySuite) TestMissingVillagesFile() {
	_, err := New(Config{StorageType: config.StorageTypeMemory, VillagesFile: "/does/not/exist", AuthConfig: s.minCost})
	s.ErrorContains(err, "load villages")
}

func (s *FactorySuite) TestFromEnv() {
	cfg := FromEnv(config.Config{
		StorageType: config.StorageTypeRedis,
		RedisURL:    "redis://cache:6379/1",
		AdminCode:   "code",
		Villages:    []string{"Badan"},
	}, nil)

	s.Require().NotNil(cfg.RedisConfig)
	s.Equal("redis://cache:6379/1", cfg.RedisConfig.URL)
	s.Equal("badan", cfg.RedisConfig.KeyPrefix)
	s.Equal("code", cfg.AuthConfig.AccessCode)
	s.Equal([]string{"Badan"}, cfg.Villages)
}
