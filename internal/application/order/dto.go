package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swiftbasket/backend/internal/domain/order"
)

// ItemInfo is one purchased line. Price is the line total.
type ItemInfo struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// OrderInfo is the order representation returned to callers
type OrderInfo struct {
	ID        uuid.UUID       `json:"id"`
	BuyerID   uuid.UUID       `json:"buyer_id"`
	Total     decimal.Decimal `json:"total"`
	Items     []ItemInfo      `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

// ListInput carries pagination options for order history
type ListInput struct {
	Page     int
	PageSize int
}

func orderInfoFromDomain(o *order.Order) OrderInfo {
	items := make([]ItemInfo, len(o.Items))
	for i, item := range o.Items {
		items[i] = ItemInfo{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}
	return OrderInfo{
		ID:        o.ID,
		BuyerID:   o.BuyerID,
		Total:     o.Total,
		Items:     items,
		CreatedAt: o.CreatedAt,
	}
}
