package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"kiezjagd_backend/internals/features/play/rankings/scoring"
)

const (
	cachePrefix   = "rank:top:"
	versionPrefix = "rank:ver:"
)

// noVersion marks a read whose version could not be fetched; nothing is
// written under it.
const noVersion int64 = -1

type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// Cache keeps per-game top lists in Redis. A nil client (or nil *Cache)
// turns every call into a miss or no-op.
//
// Lists are stored under the game's current version. Invalidate bumps the
// version, so a list computed before a new result can only land under a key
// nobody reads anymore and expires with its TTL.
type Cache struct {
	rdb cacheClient
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if rdb == nil {
		return newCache(nil, ttl)
	}
	return newCache(rdb, ttl)
}

func newCache(rdb cacheClient, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) enabled() bool { return c != nil && c.rdb != nil }

func versionKey(gameID string) string {
	return versionPrefix + gameID
}

func cacheKey(n int, gameID string, version int64) string {
	return fmt.Sprintf("%s%d:%s:%d", cachePrefix, n, gameID, version)
}

func (c *Cache) version(ctx context.Context, gameID string) int64 {
	v, err := c.rdb.Get(ctx, versionKey(gameID)).Int64()
	switch {
	case err == nil:
		return v
	case errors.Is(err, redis.Nil):
		return 0
	default:
		return noVersion
	}
}

// Get returns the cached list and the version it was looked up under. Pass
// that version to Set when filling a miss.
func (c *Cache) Get(ctx context.Context, n int, gameID string) ([]scoring.Ranked, int64, bool) {
	if !c.enabled() {
		return nil, noVersion, false
	}
	ver := c.version(ctx, gameID)
	if ver == noVersion {
		return nil, noVersion, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey(n, gameID, ver)).Bytes()
	if err != nil {
		return nil, ver, false
	}
	var rows []scoring.Ranked
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		return nil, ver, false
	}
	if rows == nil {
		rows = []scoring.Ranked{}
	}
	return rows, ver, true
}

func (c *Cache) Set(ctx context.Context, n int, gameID string, version int64, rows []scoring.Ranked) error {
	if !c.enabled() || version == noVersion {
		return nil
	}
	data, err := sonic.Marshal(rows)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(n, gameID, version), data, c.ttl).Err()
}

// Invalidate retires every cached list of a game, whatever its n.
func (c *Cache) Invalidate(ctx context.Context, gameID string) error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.Incr(ctx, versionKey(gameID)).Err()
}
