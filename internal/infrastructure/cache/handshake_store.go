package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// HandshakeStore records that a password reset token passed validation
// before the new password is submitted. The mark is short-lived and
// consumed exactly once.
type HandshakeStore interface {
	Mark(ctx context.Context, tokenHash string, ttl time.Duration) error
	Consume(ctx context.Context, tokenHash string) (bool, error)
}

// RedisHandshakeStore implements HandshakeStore using Redis
type RedisHandshakeStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisHandshakeStoreWithClient creates a store with an existing Redis client
func NewRedisHandshakeStoreWithClient(client *redis.Client, keyPrefix string) *RedisHandshakeStore {
	if keyPrefix == "" {
		keyPrefix = "reset:handshake:"
	}
	return &RedisHandshakeStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Mark records a validated token hash with a TTL
func (s *RedisHandshakeStore) Mark(ctx context.Context, tokenHash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.keyPrefix+tokenHash, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark reset handshake: %w", err)
	}
	return nil
}

// Consume removes the mark and reports whether it existed. GETDEL
// keeps check and removal atomic across instances.
func (s *RedisHandshakeStore) Consume(ctx context.Context, tokenHash string) (bool, error) {
	result, err := s.client.GetDel(ctx, s.keyPrefix+tokenHash).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to consume reset handshake: %w", err)
	}
	return result != "", nil
}

var _ HandshakeStore = (*RedisHandshakeStore)(nil)

// MemoryHandshakeStore is an in-memory HandshakeStore for tests and
// single-instance development runs.
type MemoryHandshakeStore struct {
	mu    sync.Mutex
	marks map[string]time.Time
}

// NewMemoryHandshakeStore creates an empty in-memory handshake store
func NewMemoryHandshakeStore() *MemoryHandshakeStore {
	return &MemoryHandshakeStore{marks: make(map[string]time.Time)}
}

// Mark records a validated token hash with a TTL
func (s *MemoryHandshakeStore) Mark(ctx context.Context, tokenHash string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marks[tokenHash] = time.Now().Add(ttl)
	return nil
}

// Consume removes the mark and reports whether it was present and unexpired
func (s *MemoryHandshakeStore) Consume(ctx context.Context, tokenHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.marks[tokenHash]
	if !ok {
		return false, nil
	}
	delete(s.marks, tokenHash)
	return time.Now().Before(expiry), nil
}

var _ HandshakeStore = (*MemoryHandshakeStore)(nil)
