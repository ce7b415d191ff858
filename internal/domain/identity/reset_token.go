package identity

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/domain/shared"
)

// ResetTokenTTL is how long a password reset token stays valid
const ResetTokenTTL = 5 * time.Minute

// ResetToken is a single-use password reset credential. Only the hash
// of the token is persisted; the raw value travels to the user once,
// in the reset email, and is discarded.
type ResetToken struct {
	shared.BaseEntity
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
}

// NewResetToken mints a token for the user and returns the entity
// together with the raw token value to embed in the email link.
func NewResetToken(userID uuid.UUID) (*ResetToken, string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, "", err
	}
	raw := base64.RawURLEncoding.EncodeToString(buf)

	token := &ResetToken{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		TokenHash:  HashResetToken(raw),
		ExpiresAt:  time.Now().Add(ResetTokenTTL),
	}
	return token, raw, nil
}

// HashResetToken computes the stored digest of a raw token value
func HashResetToken(raw string) string {
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// IsExpired reports whether the token is past its expiry at the given time
func (t *ResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// IsUsed reports whether the token was already consumed
func (t *ResetToken) IsUsed() bool {
	return t.UsedAt != nil
}

// Consume marks the token used. A token can be consumed once, and
// only while it is still valid.
func (t *ResetToken) Consume(now time.Time) error {
	if t.IsUsed() {
		return shared.ErrTokenInvalid
	}
	if t.IsExpired(now) {
		return shared.ErrTokenExpired
	}
	t.UsedAt = &now
	t.Touch()
	return nil
}
