package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound = errors.New("session not found")

	// ErrCorrupt means the stored session could not be decoded.
	ErrCorrupt = errors.New("session data corrupt")
)

// Store persists sessions between requests.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process memory. Entries idle for longer than
// the TTL are dropped on access.
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string][]byte
}

// NewMemoryStore creates an in-memory store. A zero ttl never expires.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, data: map[string][]byte{}}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	s, err := decode(raw)
	if err != nil {
		return nil, err
	}
	if m.ttl > 0 && m.now().Sub(s.UpdatedAt) > m.ttl {
		delete(m.data, id)
		return nil, ErrNotFound
	}
	return s, nil
}

// Save stores a copy; later mutations of s are not visible until saved again.
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = m.now()
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.data[s.ID] = raw
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

const sessionKeyPrefix = "session:"

// RedisStore keeps sessions in Redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an already connected client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	return decode(raw)
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	s.UpdatedAt = time.Now()
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+s.ID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKeyPrefix+id).Err()
}

func decode(raw []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if s.Answers == nil {
		s.Answers = map[string]AnswerState{}
	}
	return &s, nil
}
