package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/swiftbasket/backend/internal/domain/cart"
	"github.com/swiftbasket/backend/internal/domain/shared"
)

// DefaultSessionCartTTL is how long an untouched anonymous cart survives
const DefaultSessionCartTTL = 14 * 24 * time.Hour

// RedisCartStore implements cart.Repository for anonymous session
// carts. Each cart is a Redis hash of product ID to quantity, expiring
// after a period of inactivity.
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisCartStore creates a Redis-backed session cart store
func NewRedisCartStore(cfg RedisConfig) (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCartStoreWithClient(client, "", 0), nil
}

// NewRedisCartStoreWithClient creates a store with an existing Redis
// client, useful for testing or sharing a client across components.
func NewRedisCartStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisCartStore {
	if keyPrefix == "" {
		keyPrefix = "cart:session:"
	}
	if ttl == 0 {
		ttl = DefaultSessionCartTTL
	}
	return &RedisCartStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get returns the session cart's lines
func (s *RedisCartStore) Get(ctx context.Context, key cart.Key) ([]cart.Line, error) {
	redisKey, err := s.redisKey(key)
	if err != nil {
		return nil, err
	}

	fields, err := s.client.HGetAll(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session cart: %w", err)
	}

	lines := make([]cart.Line, 0, len(fields))
	for field, value := range fields {
		productID, err := uuid.Parse(field)
		if err != nil {
			continue
		}
		quantity, err := strconv.Atoi(value)
		if err != nil || quantity <= 0 {
			continue
		}
		lines = append(lines, cart.Line{ProductID: productID, Quantity: quantity})
	}
	return lines, nil
}

// Add folds quantity into the session cart atomically via HINCRBY
func (s *RedisCartStore) Add(ctx context.Context, key cart.Key, productID uuid.UUID, quantity int) error {
	redisKey, err := s.redisKey(key)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}

	if err := s.client.HIncrBy(ctx, redisKey, productID.String(), int64(quantity)).Err(); err != nil {
		return fmt.Errorf("failed to add to session cart: %w", err)
	}
	return s.client.Expire(ctx, redisKey, s.ttl).Err()
}

// SetQuantity overwrites the line's quantity; zero or less removes it
func (s *RedisCartStore) SetQuantity(ctx context.Context, key cart.Key, productID uuid.UUID, quantity int) error {
	redisKey, err := s.redisKey(key)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return s.client.HDel(ctx, redisKey, productID.String()).Err()
	}

	if err := s.client.HSet(ctx, redisKey, productID.String(), quantity).Err(); err != nil {
		return fmt.Errorf("failed to update session cart: %w", err)
	}
	return s.client.Expire(ctx, redisKey, s.ttl).Err()
}

// Remove deletes the line for the product
func (s *RedisCartStore) Remove(ctx context.Context, key cart.Key, productID uuid.UUID) error {
	redisKey, err := s.redisKey(key)
	if err != nil {
		return err
	}
	return s.client.HDel(ctx, redisKey, productID.String()).Err()
}

// Clear drops the whole session cart
func (s *RedisCartStore) Clear(ctx context.Context, key cart.Key) error {
	redisKey, err := s.redisKey(key)
	if err != nil {
		return err
	}
	return s.client.Del(ctx, redisKey).Err()
}

// Close closes the Redis client
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

func (s *RedisCartStore) redisKey(key cart.Key) (string, error) {
	if err := key.Validate(); err != nil {
		return "", err
	}
	if !key.IsAnonymous() {
		return "", shared.NewDomainError("INVALID_INPUT", "Session cart store only serves anonymous carts")
	}
	return s.keyPrefix + key.SessionID, nil
}

var _ cart.Repository = (*RedisCartStore)(nil)
