package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swiftbasket/backend/internal/domain/shared"
)

// MaxProductNameLength is the maximum allowed product name length
const MaxProductNameLength = 200

// Product is a listing inside a store. The (store, name) pair is
// unique, enforced by a database constraint.
type Product struct {
	shared.BaseAggregateRoot
	StoreID     uuid.UUID
	Name        string
	Description string
	ImageURL    string
	Price       decimal.Decimal
}

// NewProduct creates a product in the given store
func NewProduct(storeID uuid.UUID, name, description, imageURL string, price decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Store is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreID:           storeID,
		Name:              name,
		Description:       strings.TrimSpace(description),
		ImageURL:          strings.TrimSpace(imageURL),
		Price:             price,
	}, nil
}

// Update changes the product's listing fields
func (p *Product) Update(name, description, imageURL string, price decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return err
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Price cannot be negative")
	}
	p.Name = name
	p.Description = strings.TrimSpace(description)
	p.ImageURL = strings.TrimSpace(imageURL)
	p.Price = price
	p.Touch()
	p.IncrementVersion()
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if len(name) > MaxProductNameLength {
		return shared.NewDomainError("INVALID_INPUT", "Product name is too long")
	}
	return nil
}
