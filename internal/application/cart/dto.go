package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemInput identifies a product and quantity for cart mutations
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// ItemInfo is one cart line enriched with current catalog data.
// Unavailable marks lines whose product has been delisted since it
// was added; those lines carry no price.
type ItemInfo struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Unavailable bool            `json:"unavailable,omitempty"`
}

// CartInfo is the cart representation returned to callers
type CartInfo struct {
	Items         []ItemInfo      `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	Total         decimal.Decimal `json:"total"`
}
