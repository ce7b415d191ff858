package models

import (
	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/domain/review"
)

// ReviewModel is the persistence model for the Review domain entity.
// The composite unique index enforces one review per user per product.
type ReviewModel struct {
	BaseModel
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"type:text"`
	IsVerified bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review entity.
func (m *ReviewModel) ToDomain() *review.Review {
	return &review.Review{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		UserID:     m.UserID,
		Rating:     m.Rating,
		Comment:    m.Comment,
		IsVerified: m.IsVerified,
	}
}

// FromDomain populates the persistence model from a domain Review entity.
func (m *ReviewModel) FromDomain(r *review.Review) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ProductID = r.ProductID
	m.UserID = r.UserID
	m.Rating = r.Rating
	m.Comment = r.Comment
	m.IsVerified = r.IsVerified
}

// ReviewModelFromDomain creates a new persistence model from a domain Review entity.
func ReviewModelFromDomain(r *review.Review) *ReviewModel {
	m := &ReviewModel{}
	m.FromDomain(r)
	return m
}
