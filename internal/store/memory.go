package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps history in process memory; it is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	attempts map[string][]Attempt
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{attempts: map[string][]Attempt{}}
}

func (m *MemoryStore) RecordAttempt(_ context.Context, a Attempt) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	a.Options = append([]string(nil), a.Options...)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[a.SessionID] = append(m.attempts[a.SessionID], a)
	return nil
}

func (m *MemoryStore) History(_ context.Context, sessionID string, limit int) ([]Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.attempts[sessionID]
	out := make([]Attempt, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, all[i])
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
