package identity

import (
	"context"

	"github.com/google/uuid"
)

// ResetTokenRepository defines the persistence interface for password
// reset tokens. Lookups go through the token hash, never the raw value.
type ResetTokenRepository interface {
	Save(ctx context.Context, token *ResetToken) error
	FindByHash(ctx context.Context, tokenHash string) (*ResetToken, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
