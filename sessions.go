package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"lg/wellness-coach-go-api/internal/coach"
)

// errSessionNotFound is returned by every store for unknown or expired IDs.
var errSessionNotFound = errors.New("session not found")

// sessionStore holds questionnaire sessions for the lifetime of one run.
// Sessions are values; Save replaces whatever was stored under the ID.
type sessionStore interface {
	Get(ctx context.Context, id string) (coach.Session, error)
	Save(ctx context.Context, s coach.Session) error
	Delete(ctx context.Context, id string) error
}

/* ─── In-memory store ─────────────────────────────────────────────────── */

type memoryEntry struct {
	session   coach.Session
	expiresAt time.Time
}

// memoryStore keeps sessions in a map. Expired entries are dropped lazily on
// read and swept on every write.
type memoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func newMemoryStore(ttl time.Duration) *memoryStore {
	return &memoryStore{ttl: ttl, now: time.Now, entries: make(map[string]memoryEntry)}
}

func (m *memoryStore) Get(_ context.Context, id string) (coach.Session, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok || !m.now().Before(e.expiresAt) {
		return coach.Session{}, errSessionNotFound
	}
	return e.session, nil
}

func (m *memoryStore) Save(_ context.Context, s coach.Session) error {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, id)
		}
	}
	m.entries[s.ID] = memoryEntry{session: s, expiresAt: now.Add(m.ttl)}
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return errSessionNotFound
	}
	delete(m.entries, id)
	return nil
}

/* ─── Redis store ─────────────────────────────────────────────────────── */

const redisKeyPrefix = "wellness:session:"

// redisStore keeps sessions as JSON strings with a TTL, so several API
// instances can share one questionnaire run.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// newRedisClient builds a client and checks the connection.
func newRedisClient(ctx context.Context, cfg config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}

func newRedisStore(client *redis.Client, ttl time.Duration) *redisStore {
	return &redisStore{client: client, ttl: ttl}
}

func (r *redisStore) Get(ctx context.Context, id string) (coach.Session, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return coach.Session{}, errSessionNotFound
	}
	if err != nil {
		return coach.Session{}, fmt.Errorf("redis get session %s: %w", id, err)
	}
	var s coach.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return coach.Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return s, nil
}

func (r *redisStore) Save(ctx context.Context, s coach.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+s.ID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", s.ID, err)
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("redis del session %s: %w", id, err)
	}
	if n == 0 {
		return errSessionNotFound
	}
	return nil
}
