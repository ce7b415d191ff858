package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swiftbasket/backend/internal/domain/identity"
	"github.com/swiftbasket/backend/internal/infrastructure/persistence/models"
)

// GormResetTokenRepository implements identity.ResetTokenRepository using GORM
type GormResetTokenRepository struct {
	db *gorm.DB
}

// NewGormResetTokenRepository creates a new GormResetTokenRepository
func NewGormResetTokenRepository(db *gorm.DB) *GormResetTokenRepository {
	return &GormResetTokenRepository{db: db}
}

// Save creates or updates a reset token
func (r *GormResetTokenRepository) Save(ctx context.Context, token *identity.ResetToken) error {
	model := models.ResetTokenModelFromDomain(token)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// FindByHash finds a reset token by its stored hash
func (r *GormResetTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*identity.ResetToken, error) {
	var model models.ResetTokenModel
	if err := r.db.WithContext(ctx).First(&model, "token_hash = ?", tokenHash).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// DeleteByUser removes all reset tokens for a user
func (r *GormResetTokenRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ResetTokenModel{}, "user_id = ?", userID).Error
}

var _ identity.ResetTokenRepository = (*GormResetTokenRepository)(nil)
