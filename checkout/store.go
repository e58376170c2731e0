package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps checkout sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	// Update applies fn to the stored session and saves the result as one
	// atomic step. Nothing is saved when fn fails.
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
}

type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string][]byte
	expires  map[string]time.Time
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string][]byte),
		expires:  make(map[string]time.Time),
		now:      time.Now,
	}
}

// Save stores a copy, so callers never share a Session across requests.
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = raw
	m.expires[s.ID] = m.now().Add(m.ttl)
	return nil
}

// lookup must be called with m.mu held.
func (m *MemoryStore) lookup(id string) (*Session, error) {
	raw, ok := m.sessions[id]
	if ok && m.now().After(m.expires[id]) {
		delete(m.sessions, id)
		delete(m.expires, id)
		ok = false
	}
	if !ok {
		return nil, ErrSessionNotFound
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookup(id)
}

func (m *MemoryStore) Update(_ context.Context, id string, fn func(*Session) error) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	m.sessions[id] = raw
	m.expires[id] = m.now().Add(m.ttl)
	return s, nil
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(id string) string { return "checkout:" + id }

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKey(s.ID), raw, r.ttl).Err()
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	raw, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Update runs as a WATCH transaction. Losing the race to another writer is
// reported as ErrWrongStep.
func (r *RedisStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	key := redisKey(id)
	var updated *Session
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		var s Session
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		if err := fn(&s); err != nil {
			return err
		}

		next, err := json.Marshal(&s)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = &s
		return nil
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return nil, ErrWrongStep
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}
