package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swiftbasket/backend/internal/domain/order"
	"github.com/swiftbasket/backend/internal/domain/shared"
	"github.com/swiftbasket/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Place writes the order with its items and empties the buyer's
// stored cart in one transaction. If anything fails the cart is left
// untouched and no order exists.
func (r *GormOrderRepository) Place(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderModel := models.OrderModelFromDomain(o)
		if err := tx.Create(orderModel).Error; err != nil {
			return translateError(err)
		}

		for _, item := range o.Items {
			var itemModel models.OrderItemModel
			itemModel.FromDomain(item)
			if err := tx.Create(&itemModel).Error; err != nil {
				return translateError(err)
			}
		}

		return tx.
			Where("cart_id IN (?)", tx.Model(&models.CartModel{}).Select("id").Where("user_id = ?", o.BuyerID)).
			Delete(&models.CartItemModel{}).Error
	})
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var orderModel models.OrderModel
	if err := r.db.WithContext(ctx).First(&orderModel, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}

	o := orderModel.ToDomain()
	items, err := r.loadItems(ctx, []uuid.UUID{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

// FindByBuyer finds a buyer's orders with their items, newest first
func (r *GormOrderRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var rows []models.OrderModel
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("buyer_id = ?", buyerID)
	query = applyFilter(query, filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []order.Order{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	itemsByOrder, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	orders := make([]order.Order, len(rows))
	for i := range rows {
		o := rows[i].ToDomain()
		o.Items = itemsByOrder[o.ID]
		orders[i] = *o
	}
	return orders, nil
}

// HasPurchased reports whether the buyer has an order containing a
// product with the given name. Matching is by snapshot name, so a
// review still verifies after the listing is renamed or deleted.
func (r *GormOrderRepository) HasPurchased(ctx context.Context, buyerID uuid.UUID, productName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderItemModel{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.buyer_id = ? AND order_items.product_name = ?", buyerID, productName).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormOrderRepository) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]order.OrderItem, error) {
	var rows []models.OrderItemModel
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	byOrder := make(map[uuid.UUID][]order.OrderItem, len(orderIDs))
	for _, row := range rows {
		byOrder[row.OrderID] = append(byOrder[row.OrderID], row.ToDomain())
	}
	return byOrder, nil
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)
