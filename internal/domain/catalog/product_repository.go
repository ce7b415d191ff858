package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/domain/shared"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	shared.Repository[Product]
	FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
}
