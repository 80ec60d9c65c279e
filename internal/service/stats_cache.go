package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trade-journal/internal/metrics"
)

// TradeUpdatesChannel is the Redis pub/sub channel carrying trade-change
// notifications; the stream service fans these out to open dashboards.
const TradeUpdatesChannel = "trade_updates"

const statsCacheTTL = 60 * time.Second

// StatsCache is a Redis read-through cache for aggregate statistics,
// keyed by the filter that produced them. Instead of deleting entries on
// trade changes, a per-user version counter is folded into every key, so
// stale entries simply age out.
type StatsCache struct {
	redis *redis.Client
}

// NewStatsCache creates a new StatsCache
func NewStatsCache(redisClient *redis.Client) *StatsCache {
	return &StatsCache{redis: redisClient}
}

// Get returns the cached stats for a user and filter key, if present
func (c *StatsCache) Get(ctx context.Context, userID uint, filterKey string) (*metrics.Stats, bool) {
	key, err := c.key(ctx, userID, filterKey)
	if err != nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var stats metrics.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

// Set stores computed stats for a user and filter key
func (c *StatsCache) Set(ctx context.Context, userID uint, filterKey string, stats *metrics.Stats) {
	key, err := c.key(ctx, userID, filterKey)
	if err != nil {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	c.redis.Set(ctx, key, data, statsCacheTTL)
}

// Invalidate bumps the user's stats version, orphaning every cached
// entry, and publishes a trade-change notification for live dashboards.
// Cache trouble is never surfaced; the caller recomputes on miss.
func (c *StatsCache) Invalidate(ctx context.Context, userID uint) {
	c.redis.Incr(ctx, c.versionKey(userID))
	c.redis.Publish(ctx, TradeUpdatesChannel, fmt.Sprintf("%d", userID))
}

func (c *StatsCache) key(ctx context.Context, userID uint, filterKey string) (string, error) {
	version, err := c.redis.Get(ctx, c.versionKey(userID)).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("stats:%d:%d:%s", userID, version, filterKey), nil
}

func (c *StatsCache) versionKey(userID uint) string {
	return fmt.Sprintf("stats_version:%d", userID)
}
