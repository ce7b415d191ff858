package review

import (
	"time"

	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/domain/review"
)

// CreateInput contains input for writing a review
type CreateInput struct {
	ProductID uuid.UUID
	Rating    int
	Comment   string
}

// ReviewInfo is the review representation returned to callers
type ReviewInfo struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	UserID     uuid.UUID `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListInput carries pagination options for product reviews
type ListInput struct {
	Page     int
	PageSize int
}

// ListResult is a page of reviews with the product's overall count
// and average rating
type ListResult struct {
	Reviews   []ReviewInfo `json:"reviews"`
	Total     int64        `json:"total"`
	AvgRating float64      `json:"avg_rating"`
}

func reviewInfoFromDomain(r *review.Review) ReviewInfo {
	return ReviewInfo{
		ID:         r.ID,
		ProductID:  r.ProductID,
		UserID:     r.UserID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		IsVerified: r.IsVerified,
		CreatedAt:  r.CreatedAt,
	}
}
