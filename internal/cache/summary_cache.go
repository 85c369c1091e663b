package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pomofocus/internal/config"
)

const (
	summaryPrefix = "dashboard:"
	scanBatch     = 100
)

// SummaryCache stores encoded dashboard summaries in Redis, one key per user
// and day. Values are opaque bytes; decoding belongs to the caller.
type SummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSummaryCache wraps an existing client
func NewSummaryCache(rdb *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{rdb: rdb, ttl: ttl}
}

// NewClient builds a Redis client from the cache settings
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Open connects to Redis and checks the server answers. It returns nil, nil
// when no server is configured.
func Open(ctx context.Context, cfg *config.Config) (*SummaryCache, error) {
	if !cfg.RedisEnabled() {
		return nil, nil
	}
	rdb := NewClient(cfg.Redis)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
	}
	return NewSummaryCache(rdb, cfg.Redis.DefaultTTL.Duration()), nil
}

func summaryKey(userID, date string) string {
	return summaryPrefix + userID + ":" + date
}

// GetSummary returns the cached bytes, or nil on a miss
func (c *SummaryCache) GetSummary(ctx context.Context, userID, date string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, summaryKey(userID, date)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get dashboard summary: %w", err)
	}
	return b, nil
}

// SetSummary stores data until the configured TTL elapses
func (c *SummaryCache) SetSummary(ctx context.Context, userID, date string, data []byte) error {
	if err := c.rdb.Set(ctx, summaryKey(userID, date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set dashboard summary: %w", err)
	}
	return nil
}

// InvalidateUser drops every cached day of a user
func (c *SummaryCache) InvalidateUser(ctx context.Context, userID string) error {
	iter := c.rdb.Scan(ctx, 0, summaryPrefix+userID+":*", scanBatch).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan dashboard summaries: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete dashboard summaries: %w", err)
	}
	return nil
}

// Ping reports whether the server is reachable
func (c *SummaryCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the connection pool
func (c *SummaryCache) Close() error {
	return c.rdb.Close()
}
