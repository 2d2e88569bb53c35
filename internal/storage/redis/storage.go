package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/badancup/internal/dependencies/clock"
	"github.com/mcoot/badancup/internal/model"
	"github.com/mcoot/badancup/internal/storage"
)

// Storage is a Redis-backed implementation of the player store
type Storage struct {
	client *redis.Client
	cfg    Config
	keys   keys
	clock  clock.Clock
}

// New creates a new Redis storage instance
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg, clk), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, clk clock.Clock) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultConfig().PageSize
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Storage{
		client: client,
		cfg:    cfg,
		keys:   keys{prefix: cfg.KeyPrefix},
		clock:  clk,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.PlayerStore = (*Storage)(nil)

// insertScript claims the roster field and writes the record and index in
// one step. Returns 0 when the pair is already claimed.
//
// KEYS: roster hash, player key, players index
// ARGV: roster field, player id, player JSON
var insertScript = redis.NewScript(`
if redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2]) == 0 then
	return 0
end
redis.call('SET', KEYS[2], ARGV[3])
redis.call('ZADD', KEYS[3], ARGV[2], KEYS[2])
return 1
`)

// InsertPlayer claims the (name, village) pair and stores the record in a
// single script, so concurrent inserts of the same pair cannot both succeed
// and a claim never exists without its record
func (s *Storage) InsertPlayer(ctx context.Context, p *model.NewPlayer) (*model.Player, error) {
	seq, err := s.client.Incr(ctx, s.keys.sequenceKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("allocate player id: %w", err)
	}
	id := model.PlayerID(seq)

	player := &model.Player{
		ID:        id,
		Name:      p.Name,
		Phone:     p.Phone,
		Village:   p.Village,
		Team:      p.Team,
		IP:        p.IP,
		CreatedAt: s.clock.Now().UTC(),
	}

	data, err := json.Marshal(player)
	if err != nil {
		return nil, err
	}

	playerKey := s.keys.playerKey(id)
	inserted, err := insertScript.Run(ctx, s.client,
		[]string{s.keys.rosterKey(), playerKey, s.keys.playersIndexKey()},
		rosterField(p.Name, p.Village), int64(id), data,
	).Int()
	if err != nil {
		return nil, fmt.Errorf("save player: %w", err)
	}
	if inserted == 0 {
		return nil, model.ErrDuplicatePlayer
	}

	return player, nil
}

func (s *Storage) PlayerExists(ctx context.Context, name, village string) (bool, error) {
	return s.client.HExists(ctx, s.keys.rosterKey(), rosterField(name, village)).Result()
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return storage.Collect(s.StreamPlayers(ctx))
}

// StreamPlayers pages through the index from the highest ID down, fetching
// each page of records with MGET
func (s *Storage) StreamPlayers(ctx context.Context) iter.Seq2[*model.Player, error] {
	return func(yield func(*model.Player, error) bool) {
		pageSize := int64(s.cfg.PageSize)
		for start := int64(0); ; start += pageSize {
			playerKeys, err := s.client.ZRevRange(ctx, s.keys.playersIndexKey(), start, start+pageSize-1).Result()
			if err != nil {
				yield(nil, fmt.Errorf("list player index: %w", err))
				return
			}
			if len(playerKeys) == 0 {
				return
			}

			values, err := s.client.MGet(ctx, playerKeys...).Result()
			if err != nil {
				yield(nil, fmt.Errorf("fetch players: %w", err))
				return
			}

			for i, val := range values {
				raw, ok := val.(string)
				if !ok {
					yield(nil, fmt.Errorf("player record %s is missing", playerKeys[i]))
					return
				}
				var player model.Player
				if err := json.Unmarshal([]byte(raw), &player); err != nil {
					yield(nil, fmt.Errorf("decode player %s: %w", playerKeys[i], err))
					return
				}
				if !yield(&player, nil) {
					return
				}
			}

			if int64(len(playerKeys)) < pageSize {
				return
			}
		}
	}
}

func (s *Storage) CountPlayers(ctx context.Context) (int, error) {
	n, err := s.client.ZCard(ctx, s.keys.playersIndexKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
