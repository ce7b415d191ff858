package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/domain/shared"
)

// StoreRepository defines the persistence interface for stores
type StoreRepository interface {
	shared.Repository[Store]
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*Store, error)
}
