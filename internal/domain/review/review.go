package review

import (
	"strings"

	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/domain/shared"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a buyer's rating of a product. IsVerified is computed
// once at creation, from whether the reviewer has an order containing
// a product of the same name; it is never recomputed afterwards.
type Review struct {
	shared.BaseEntity
	ProductID  uuid.UUID
	UserID     uuid.UUID
	Rating     int
	Comment    string
	IsVerified bool
}

// NewReview creates a review. One review per user per product is
// enforced by a database constraint.
func NewReview(productID, userID uuid.UUID, rating int, comment string, verified bool) (*Review, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product is required")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "User is required")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, shared.NewDomainError("INVALID_INPUT", "Rating must be between 1 and 5")
	}

	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		UserID:     userID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		IsVerified: verified,
	}, nil
}
