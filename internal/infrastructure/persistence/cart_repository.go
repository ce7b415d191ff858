package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/swiftbasket/backend/internal/domain/cart"
	"github.com/swiftbasket/backend/internal/domain/shared"
	"github.com/swiftbasket/backend/internal/infrastructure/persistence/models"
)

// GormCartRepository implements cart.Repository for logged-in buyers,
// backed by the carts and cart_items tables. Anonymous session carts
// are served by the cache package instead.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Get returns the cart lines for the given buyer
func (r *GormCartRepository) Get(ctx context.Context, key cart.Key) ([]cart.Line, error) {
	userID, err := requireUserKey(key)
	if err != nil {
		return nil, err
	}

	var cartModel models.CartModel
	if err := r.db.WithContext(ctx).First(&cartModel, "user_id = ?", userID).Error; err != nil {
		if translateError(err) == shared.ErrNotFound {
			return []cart.Line{}, nil
		}
		return nil, err
	}

	var items []models.CartItemModel
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartModel.ID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	lines := make([]cart.Line, len(items))
	for i, item := range items {
		lines[i] = cart.Line{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return lines, nil
}

// Add folds quantity into the buyer's line for the product. The
// upsert runs in the database, so concurrent adds of n and m always
// leave n+m behind.
func (r *GormCartRepository) Add(ctx context.Context, key cart.Key, productID uuid.UUID, quantity int) error {
	userID, err := requireUserKey(key)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartID, err := r.ensureCart(tx, userID)
		if err != nil {
			return err
		}

		now := time.Now()
		item := models.CartItemModel{
			ID:        uuid.New(),
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("quantity + excluded.quantity"),
				"updated_at": now,
			}),
		}).Create(&item).Error
	})
}

// SetQuantity overwrites the line's quantity. Zero or less removes
// the line.
func (r *GormCartRepository) SetQuantity(ctx context.Context, key cart.Key, productID uuid.UUID, quantity int) error {
	userID, err := requireUserKey(key)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return r.Remove(ctx, key, productID)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartID, err := r.ensureCart(tx, userID)
		if err != nil {
			return err
		}

		now := time.Now()
		item := models.CartItemModel{
			ID:        uuid.New(),
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   quantity,
				"updated_at": now,
			}),
		}).Create(&item).Error
	})
}

// Remove deletes the line for the product, if present
func (r *GormCartRepository) Remove(ctx context.Context, key cart.Key, productID uuid.UUID) error {
	userID, err := requireUserKey(key)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("cart_id IN (?)", r.db.Model(&models.CartModel{}).Select("id").Where("user_id = ?", userID)).
		Where("product_id = ?", productID).
		Delete(&models.CartItemModel{}).Error
}

// Clear removes all lines from the buyer's cart
func (r *GormCartRepository) Clear(ctx context.Context, key cart.Key) error {
	userID, err := requireUserKey(key)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("cart_id IN (?)", r.db.Model(&models.CartModel{}).Select("id").Where("user_id = ?", userID)).
		Delete(&models.CartItemModel{}).Error
}

// ensureCart returns the buyer's cart ID, creating the cart row on
// first use. The insert ignores conflicts so two concurrent first
// adds converge on the same row.
func (r *GormCartRepository) ensureCart(tx *gorm.DB, userID uuid.UUID) (uuid.UUID, error) {
	now := time.Now()
	cartModel := models.CartModel{
		BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:    userID,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cartModel).Error; err != nil {
		return uuid.Nil, err
	}

	var existing models.CartModel
	if err := tx.First(&existing, "user_id = ?", userID).Error; err != nil {
		return uuid.Nil, translateError(err)
	}
	return existing.ID, nil
}

func requireUserKey(key cart.Key) (uuid.UUID, error) {
	if err := key.Validate(); err != nil {
		return uuid.Nil, err
	}
	if key.IsAnonymous() {
		return uuid.Nil, shared.NewDomainError("INVALID_INPUT", "Stored carts require a logged-in user")
	}
	return key.UserID, nil
}

var _ cart.Repository = (*GormCartRepository)(nil)
