package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swiftbasket/backend/internal/domain/shared"
)

// Order is an immutable purchase record. Items snapshot the product
// name and line price at checkout time, so later catalog edits never
// rewrite history.
type Order struct {
	shared.BaseAggregateRoot
	BuyerID uuid.UUID
	Total   decimal.Decimal
	Items   []OrderItem
}

// OrderItem is one purchased line. Price is the line total, unit
// price times quantity.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// NewOrderItem snapshots a product into an order line
func NewOrderItem(productID uuid.UUID, productName string, unitPrice decimal.Decimal, quantity int) (OrderItem, error) {
	if quantity <= 0 {
		return OrderItem{}, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if productName == "" {
		return OrderItem{}, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	return OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Price:       unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// NewOrder builds an order from snapshot items. The total is the sum
// of line prices. An order must hold at least one item.
func NewOrder(buyerID uuid.UUID, items []OrderItem) (*Order, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Buyer is required")
	}
	if len(items) == 0 {
		return nil, shared.ErrCartEmpty
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		Total:             decimal.Zero,
	}
	o.Items = make([]OrderItem, len(items))
	for i, item := range items {
		item.OrderID = o.ID
		o.Items[i] = item
		o.Total = o.Total.Add(item.Price)
	}
	return o, nil
}

// Reference is the payment reference printed on the invoice
func (o *Order) Reference(username string) string {
	return username + "-" + o.ID.String()
}
