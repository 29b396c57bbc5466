package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs.
const (
	userCacheTTL     = 10 * time.Minute
	taskListCacheTTL = 5 * time.Minute
)

func userCacheKey(id string) string { return "user:" + id }
func taskListCacheKey(uid string) string { return "tasks:" + uid }

// jsonCache is a cache-aside helper over Redis. A nil client turns every call into a miss/no-op,
// and Redis failures are logged but never returned.
type jsonCache struct {
	rdb *redis.Client
	log *slog.Logger
}

// get decodes the cached value into dst and reports whether it was a hit.
func (c jsonCache) get(ctx context.Context, key string, dst any) bool {
	if c.rdb == nil {
		return false
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.log.Debug("cache miss", "key", key)
		return false
	case err != nil:
		c.log.Warn("cache get failed", "key", key, "err", err)
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		c.log.Warn("cache value unreadable", "key", key, "err", err)
		return false
	}
	c.log.Debug("cache hit", "key", key)
	return true
}

func (c jsonCache) set(ctx context.Context, key string, v any, ttl time.Duration) {
	if c.rdb == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "key", key, "err", err)
	}
}

func (c jsonCache) del(ctx context.Context, key string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.log.Warn("cache del failed", "key", key, "err", err)
	}
}
