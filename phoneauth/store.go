package phoneauth

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var errNoEntry = errors.New("no pending code")

type entry struct {
	Hash      string    `json:"hash"`
	Recipient Recipient `json:"recipient"`
	// Attempts counts wrong codes entered so far.
	Attempts  int       `json:"-"`
}

// CodeStore keeps pending codes until they expire or are consumed.
type CodeStore interface {
	Save(ctx context.Context, h Handle, e entry, ttl time.Duration) error
	Load(ctx context.Context, h Handle) (entry, error)
	// Fail records a wrong code against h and returns the attempts so far.
	Fail(ctx context.Context, h Handle) (int, error)
	// Delete reports whether h was still present.
	Delete(ctx context.Context, h Handle) (bool, error)
}

type memoryItem struct {
	entry
	expires time.Time
}

type MemoryStore struct {
	mu    sync.Mutex
	items map[Handle]memoryItem
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[Handle]memoryItem), now: time.Now}
}

func (m *MemoryStore) Save(_ context.Context, h Handle, e entry, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[h] = memoryItem{entry: e, expires: m.now().Add(ttl)}
	return nil
}

// live must be called with m.mu held.
func (m *MemoryStore) live(h Handle) (memoryItem, bool) {
	it, ok := m.items[h]
	if ok && m.now().After(it.expires) {
		delete(m.items, h)
		ok = false
	}
	return it, ok
}

func (m *MemoryStore) Load(_ context.Context, h Handle) (entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.live(h)
	if !ok {
		return entry{}, errNoEntry
	}
	return it.entry, nil
}

func (m *MemoryStore) Fail(_ context.Context, h Handle) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.live(h)
	if !ok {
		return 0, errNoEntry
	}
	it.Attempts++
	m.items[h] = it
	return it.Attempts, nil
}

func (m *MemoryStore) Delete(_ context.Context, h Handle) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[h]
	delete(m.items, h)
	return ok, nil
}

const redisKeyPrefix = "otp:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Codes are kept as a hash: the JSON entry plus an attempts counter.
func (r *RedisStore) Save(ctx context.Context, h Handle, e entry, ttl time.Duration) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	key := redisKeyPrefix + string(h)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, "entry", raw, "attempts", 0)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func (r *RedisStore) Load(ctx context.Context, h Handle) (entry, error) {
	fields, err := r.client.HGetAll(ctx, redisKeyPrefix+string(h)).Result()
	if err != nil {
		return entry{}, err
	}
	raw, ok := fields["entry"]
	if !ok {
		return entry{}, errNoEntry
	}
	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return entry{}, err
	}
	e.Attempts, _ = strconv.Atoi(fields["attempts"])
	return e, nil
}

func (r *RedisStore) Fail(ctx context.Context, h Handle) (int, error) {
	key := redisKeyPrefix + string(h)
	var exists *redis.IntCmd
	var attempts *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		exists = pipe.Exists(ctx, key)
		attempts = pipe.HIncrBy(ctx, key, "attempts", 1)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if exists.Val() == 0 {
		// the increment recreated an expired key without a TTL
		r.client.Del(ctx, key)
		return 0, errNoEntry
	}
	return int(attempts.Val()), nil
}

func (r *RedisStore) Delete(ctx context.Context, h Handle) (bool, error) {
	n, err := r.client.Del(ctx, redisKeyPrefix+string(h)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
