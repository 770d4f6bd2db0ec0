package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key prefix for cached insights
const cacheKeyPrefix = "insight:"

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an already connected Redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// GetInsight retrieves a cached answer by key
func (c *RedisCache) GetInsight(ctx context.Context, key string) (*Insight, error) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}

	var insight Insight
	if err := json.Unmarshal(data, &insight); err != nil {
		return nil, err
	}
	return &insight, nil
}

// SetInsight stores an answer with TTL
func (c *RedisCache) SetInsight(ctx context.Context, key string, insight *Insight, ttl time.Duration) error {
	data, err := json.Marshal(insight)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKeyPrefix+key, data, ttl).Err()
}

// Close is a no-op; the client is shared and owned by whoever created it.
func (c *RedisCache) Close() error {
	return nil
}
