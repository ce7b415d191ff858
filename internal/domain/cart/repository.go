package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the single cart abstraction both backing stores
// implement: the ephemeral session store and the database store.
// Callers never branch on which one they hold.
//
// Quantity semantics:
//   - Add folds quantity into an existing line atomically, so two
//     concurrent adds of n and m leave n+m behind.
//   - SetQuantity overwrites; a value of zero or less removes the line.
type Repository interface {
	Get(ctx context.Context, key Key) ([]Line, error)
	Add(ctx context.Context, key Key, productID uuid.UUID, quantity int) error
	SetQuantity(ctx context.Context, key Key, productID uuid.UUID, quantity int) error
	Remove(ctx context.Context, key Key, productID uuid.UUID) error
	Clear(ctx context.Context, key Key) error
}
