package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/domain/shared"
)

// ReviewRepository defines the persistence interface for reviews
type ReviewRepository interface {
	Save(ctx context.Context, r *Review) error
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Review, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	AvgRatingByProduct(ctx context.Context, productID uuid.UUID) (float64, error)
}
