package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/domain/shared"
)

// OrderRepository defines the persistence interface for orders.
//
// Place writes the order with its items and empties the buyer's
// stored cart inside a single transaction, so a failure anywhere
// leaves both the order absent and the cart intact.
type OrderRepository interface {
	Place(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]Order, error)
	HasPurchased(ctx context.Context, buyerID uuid.UUID, productName string) (bool, error)
}
