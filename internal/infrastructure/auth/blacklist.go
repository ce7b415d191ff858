package auth

import (
	"context"
	"time"
)

// TokenBlacklist revokes issued tokens by their JWT ID until they
// expire naturally. Backed by Redis in production and an in-memory
// map in tests.
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
