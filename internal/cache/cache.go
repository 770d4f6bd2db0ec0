package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache stores model answers that are expensive to regenerate.
type Cache interface {
	// GetInsight retrieves a cached answer by key.
	// Returns nil if not found.
	GetInsight(ctx context.Context, key string) (*Insight, error)

	// SetInsight stores an answer with TTL
	SetInsight(ctx context.Context, key string, insight *Insight, ttl time.Duration) error

	// Close closes the cache connection
	Close() error
}

// Insight is a cached model answer.
type Insight struct {
	Text      string    `json:"text"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerateCacheKey derives a stable key from the request parts. Parts are
// case-folded and trimmed so trivially different inputs share an entry.
func GenerateCacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(p))))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
