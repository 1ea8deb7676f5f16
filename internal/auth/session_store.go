package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/spec-kit/job-board/internal/domain"
)

// ErrCacheMiss is returned by CachedUser when nothing is cached.
var ErrCacheMiss = errors.New("cache miss")

// SessionStore tracks revoked tokens and caches resolved users.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	CacheUser(ctx context.Context, user *domain.User) error
	CachedUser(ctx context.Context, id string) (*domain.User, error)
}

const (
	revokedKeyPrefix = "session:revoked:"
	userKeyPrefix    = "session:user:"
)

type redisSessionStore struct {
	client  *redis.Client
	userTTL time.Duration
}

// NewRedisSessionStore returns a SessionStore backed by redis. Users are stored msgpack-encoded.
func NewRedisSessionStore(client *redis.Client, userTTL time.Duration) SessionStore {
	return &redisSessionStore{client: client, userTTL: userTTL}
}

func (s *redisSessionStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

func (s *redisSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisSessionStore) CacheUser(ctx context.Context, user *domain.User) error {
	if s.userTTL <= 0 {
		return nil
	}
	payload, err := msgpack.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKeyPrefix+user.ID, payload, s.userTTL).Err()
}

func (s *redisSessionStore) CachedUser(ctx context.Context, id string) (*domain.User, error) {
	payload, err := s.client.Get(ctx, userKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var user domain.User
	if err := msgpack.Unmarshal(payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// memorySessionStore keeps revocations in process memory. Users are not cached.
type memorySessionStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewMemorySessionStore returns a process-local SessionStore.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{revoked: make(map[string]time.Time)}
}

func (s *memorySessionStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
	s.revoked[tokenID] = until
	return nil
}

func (s *memorySessionStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[tokenID]
	return ok && time.Now().Before(exp), nil
}

func (s *memorySessionStore) CacheUser(context.Context, *domain.User) error { return nil }

func (s *memorySessionStore) CachedUser(context.Context, string) (*domain.User, error) {
	return nil, ErrCacheMiss
}
