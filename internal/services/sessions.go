package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"campus-portal-backend/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps refresh tokens and the identity they were issued to.
type SessionStore interface {
	Save(ctx context.Context, token string, user models.User, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (*models.User, error)
	Delete(ctx context.Context, token string) error
}

// RedisSessionStore

type RedisSessionStore struct {
	redis *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{redis: client}
}

func refreshKey(token string) string {
	return "refresh:" + token
}

func (s *RedisSessionStore) Save(ctx context.Context, token string, user models.User, ttl time.Duration) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.redis.Set(ctx, refreshKey(token), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Lookup(ctx context.Context, token string) (*models.User, error) {
	data, err := s.redis.Get(ctx, refreshKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &user, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return s.redis.Del(ctx, refreshKey(token)).Err()
}

// MemorySessionStore is used when no Redis URL is configured.

type memorySession struct {
	user      models.User
	expiresAt time.Time
}

type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

func NewMemorySessionStore(now func() time.Time) *MemorySessionStore {
	if now == nil {
		now = time.Now
	}
	return &MemorySessionStore{sessions: make(map[string]memorySession), now: now}
}

func (s *MemorySessionStore) Save(ctx context.Context, token string, user models.User, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for t, sess := range s.sessions {
		if !now.Before(sess.expiresAt) {
			delete(s.sessions, t)
		}
	}
	s.sessions[token] = memorySession{user: user, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Lookup(ctx context.Context, token string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !s.now().Before(sess.expiresAt) {
		delete(s.sessions, token)
		return nil, ErrSessionNotFound
	}
	user := sess.user
	return &user, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
