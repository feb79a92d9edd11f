// Package session provides the per-visitor transient store that backs OTP
// challenges and pending booking intents. Values live under a
// (session id, key) pair with a TTL and are never written to the relational
// store. The Redis implementation is used in production; the in-memory one
// serves tests and Redis-less startup.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStoreUnavailable is returned when the backing store cannot be reached.
var ErrStoreUnavailable = errors.New("session store unavailable")

// Store is the capability handed to the OTP and booking components. Get
// reports found=false for missing or expired keys. Delete ignores keys that
// do not exist.
type Store interface {
	Set(ctx context.Context, sessionID, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, sessionID, key string) ([]byte, bool, error)
	Delete(ctx context.Context, sessionID string, keys ...string) error
}

// RedisStore keeps session values in Redis under "<prefix>:<session>:<key>"
// with the TTL applied per entry, so expiry needs no sweeper.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore returns a RedisStore using the given client. An empty prefix
// defaults to "sess".
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "sess"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) fullKey(sessionID, key string) string {
	return s.prefix + ":" + sessionID + ":" + key
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.fullKey(sessionID, key), value, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) ([]byte, bool, error) {
	v, err := s.rdb.Get(ctx, s.fullKey(sessionID, key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, s.fullKey(sessionID, k))
	}
	return s.rdb.Del(ctx, full...).Err()
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// MemoryStore is a mutex-guarded in-process Store. Expired entries are
// dropped lazily on read. The clock is injectable for tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore returns an empty MemoryStore using the real clock.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

// SetClock replaces the store's time source. Intended for tests.
func (s *MemoryStore) SetClock(now func() time.Time) { s.now = now }

func (s *MemoryStore) Set(_ context.Context, sessionID, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[sessionID+":"+key] = e
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := sessionID + ":" + key
	e, ok := s.entries[k]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		delete(s.entries, k)
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.entries, sessionID+":"+k)
	}
	return nil
}
