package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swiftbasket/backend/internal/domain/review"
	"github.com/swiftbasket/backend/internal/domain/shared"
	"github.com/swiftbasket/backend/internal/infrastructure/persistence/models"
)

// GormReviewRepository implements review.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Save creates a review. A second review by the same user for the
// same product surfaces as shared.ErrAlreadyExists from the
// composite unique index.
func (r *GormReviewRepository) Save(ctx context.Context, rev *review.Review) error {
	model := models.ReviewModelFromDomain(rev)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// FindByProduct finds reviews for a product, newest first
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]review.Review, error) {
	var rows []models.ReviewModel
	query := r.db.WithContext(ctx).Model(&models.ReviewModel{}).Where("product_id = ?", productID)
	query = applyFilter(query, filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	reviews := make([]review.Review, len(rows))
	for i := range rows {
		reviews[i] = *rows[i].ToDomain()
	}
	return reviews, nil
}

// CountByProduct counts reviews for a product
func (r *GormReviewRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AvgRatingByProduct averages the ratings for a product. A product
// without reviews averages to zero.
func (r *GormReviewRepository) AvgRatingByProduct(ctx context.Context, productID uuid.UUID) (float64, error) {
	var avg float64
	if err := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("product_id = ?", productID).
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	return avg, nil
}

var _ review.ReviewRepository = (*GormReviewRepository)(nil)
