// Package sqlite provides the durable SQLite-backed player store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/mcoot/badancup/internal/dependencies/clock"
	"github.com/mcoot/badancup/internal/model"
	"github.com/mcoot/badancup/internal/storage"
)

//go:embed schema.sql
var schema string

// Store persists the roster in a single SQLite file
type Store struct {
	sqlDB *sql.DB
	clock clock.Clock
}

// Open opens (creating if needed) the SQLite database at path in WAL mode
// and ensures the players table exists
func Open(path string, clk clock.Clock) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if clk == nil {
		clk = clock.New()
	}

	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(FULL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		if hasDuplicateRows(sqlDB) {
			err = fmt.Errorf("%s already holds duplicate (name, village) rows, remove them before starting: %w", cleanPath, err)
		}
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{sqlDB: sqlDB, clock: clk}, nil
}

// Close closes the SQLite handle
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

var _ storage.PlayerStore = (*Store)(nil)

// InsertPlayer inserts one registration. The unique (name, village) index
// makes the duplicate check atomic with the write.
func (s *Store) InsertPlayer(ctx context.Context, p *model.NewPlayer) (*model.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	createdAt := s.clock.Now().UTC()
	res, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO players (name, phone, village, team, ip, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name,
		nullString(p.Phone),
		p.Village,
		nullString(p.Team),
		nullString(p.IP),
		createdAt.Format(model.TimestampLayout),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrDuplicatePlayer
		}
		return nil, fmt.Errorf("insert player: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert player id: %w", err)
	}

	return &model.Player{
		ID:        model.PlayerID(id),
		Name:      p.Name,
		Phone:     p.Phone,
		Village:   p.Village,
		Team:      p.Team,
		IP:        p.IP,
		CreatedAt: createdAt.Truncate(time.Second),
	}, nil
}

// PlayerExists reports whether the exact (name, village) pair is stored
func (s *Store) PlayerExists(ctx context.Context, name, village string) (bool, error) {
	var exists bool
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM players WHERE name = ? AND village = ?)`,
		name,
		village,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check player exists: %w", err)
	}
	return exists, nil
}

// ListPlayers returns every registration, highest ID first
func (s *Store) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return storage.Collect(s.StreamPlayers(ctx))
}

// StreamPlayers walks a single cursor over the players table
func (s *Store) StreamPlayers(ctx context.Context) iter.Seq2[*model.Player, error] {
	return func(yield func(*model.Player, error) bool) {
		rows, err := s.sqlDB.QueryContext(
			ctx,
			`SELECT id, name, phone, village, team, ip, created_at
			   FROM players
			  ORDER BY id DESC`,
		)
		if err != nil {
			yield(nil, fmt.Errorf("list players: %w", err))
			return
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			p, err := scanPlayer(rows)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(p, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("list players: %w", err))
		}
	}
}

// CountPlayers returns the number of registrations
func (s *Store) CountPlayers(ctx context.Context) (int, error) {
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return count, nil
}

func scanPlayer(rows *sql.Rows) (*model.Player, error) {
	var (
		p         model.Player
		id        int64
		phone     sql.NullString
		team      sql.NullString
		ip        sql.NullString
		createdAt sql.NullString
	)
	if err := rows.Scan(&id, &p.Name, &phone, &p.Village, &team, &ip, &createdAt); err != nil {
		return nil, fmt.Errorf("scan player: %w", err)
	}

	p.ID = model.PlayerID(id)
	p.Phone = fromNullString(phone)
	p.Team = fromNullString(team)
	p.IP = fromNullString(ip)
	if createdAt.Valid {
		t, err := time.ParseInLocation(model.TimestampLayout, createdAt.String, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for player %d: %w", id, err)
		}
		p.CreatedAt = t
	}
	return &p, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// hasDuplicateRows reports whether an existing players table would block the
// unique (name, village) index
func hasDuplicateRows(sqlDB *sql.DB) bool {
	var one int
	err := sqlDB.QueryRow(`SELECT 1 FROM players GROUP BY name, village HAVING COUNT(*) > 1 LIMIT 1`).Scan(&one)
	return err == nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
