package aggregate

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache keeps daily aggregates in redis for a short TTL. Everything is
// best effort: a miss, a marshal failure or an unreachable redis all fall
// through to Postgres.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a cache with the given TTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisCache{client: client, ttl: ttl}
}

// GetDaily returns a cached aggregate when present.
func (c *RedisCache) GetDaily(ctx context.Context, day time.Time, mode Mode) (*Daily, bool) {
	raw, err := c.client.Get(ctx, dailyKey(day, mode)).Bytes()
	if err != nil {
		return nil, false
	}
	var d Daily
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, false
	}
	return &d, true
}

// SetDaily stores an aggregate.
func (c *RedisCache) SetDaily(ctx context.Context, day time.Time, mode Mode, d Daily) {
	raw, err := json.Marshal(d)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, dailyKey(day, mode), raw, c.ttl).Err()
}

// InvalidateDay drops the cached aggregates for a day after the ledger
// changed underneath them.
func (c *RedisCache) InvalidateDay(ctx context.Context, day time.Time) {
	_ = c.client.Del(ctx,
		dailyKey(day, ModeLedgerOnly),
		dailyKey(day, ModeRosterComplete),
	).Err()
}

func dailyKey(day time.Time, mode Mode) string {
	return "attendtrack:daily:" + day.Format("2006-01-02") + ":" + string(mode)
}
