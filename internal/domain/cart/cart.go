package cart

import (
	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/domain/shared"
)

// Key identifies whose cart an operation targets. Exactly one of
// UserID or SessionID is set: logged-in buyers carry a persistent
// cart keyed by user, anonymous visitors carry an ephemeral cart
// keyed by session.
type Key struct {
	UserID    uuid.UUID
	SessionID string
}

// ForUser builds a key for a logged-in buyer's cart
func ForUser(userID uuid.UUID) Key {
	return Key{UserID: userID}
}

// ForSession builds a key for an anonymous session cart
func ForSession(sessionID string) Key {
	return Key{SessionID: sessionID}
}

// IsAnonymous reports whether the key targets a session cart
func (k Key) IsAnonymous() bool {
	return k.UserID == uuid.Nil
}

// Validate checks that the key targets exactly one cart
func (k Key) Validate() error {
	if k.UserID == uuid.Nil && k.SessionID == "" {
		return shared.NewDomainError("INVALID_INPUT", "Cart key is empty")
	}
	if k.UserID != uuid.Nil && k.SessionID != "" {
		return shared.NewDomainError("INVALID_INPUT", "Cart key is ambiguous")
	}
	return nil
}

// Line is one product entry in a cart
type Line struct {
	ProductID uuid.UUID
	Quantity  int
}

// TotalQuantity sums the quantities across lines
func TotalQuantity(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}
