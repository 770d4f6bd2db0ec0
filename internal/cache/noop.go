package cache

import (
	"context"
	"time"
)

// NoOpCache is a cache implementation that does nothing.
// Used when no cache is configured or Redis is unavailable - all operations
// succeed but no actual caching occurs (always cache miss).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache instance
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// GetInsight always returns nil (cache miss)
func (c *NoOpCache) GetInsight(ctx context.Context, key string) (*Insight, error) {
	return nil, nil
}

// SetInsight does nothing and always succeeds
func (c *NoOpCache) SetInsight(ctx context.Context, key string, insight *Insight, ttl time.Duration) error {
	return nil
}

// Close does nothing and always succeeds
func (c *NoOpCache) Close() error {
	return nil
}
