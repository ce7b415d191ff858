package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swiftbasket/backend/internal/domain/catalog"
	"github.com/swiftbasket/backend/internal/domain/shared"
)

// CreateStoreInput contains input for opening a store
type CreateStoreInput struct {
	Name        string
	Description string
}

// UpdateStoreInput contains input for updating a store
type UpdateStoreInput struct {
	Name        string
	Description string
}

// StoreInfo is the store representation returned to callers
type StoreInfo struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateProductInput contains input for listing a product
type CreateProductInput struct {
	Name        string
	Description string
	ImageURL    string
	Price       decimal.Decimal
}

// UpdateProductInput contains input for updating a product listing
type UpdateProductInput struct {
	Name        string
	Description string
	ImageURL    string
	Price       decimal.Decimal
}

// ProductInfo is the product representation returned to callers
type ProductInfo struct {
	ID          uuid.UUID       `json:"id"`
	StoreID     uuid.UUID       `json:"store_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductDetail is a single product with its review aggregates
type ProductDetail struct {
	ProductInfo
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}

// ListInput carries pagination and search options for catalog listings
type ListInput struct {
	Page     int
	PageSize int
	Search   string
}

// Filter converts the input into a repository filter
func (in ListInput) Filter() shared.Filter {
	f := shared.DefaultFilter()
	if in.Page > 0 {
		f.Page = in.Page
	}
	if in.PageSize > 0 && in.PageSize <= 100 {
		f.PageSize = in.PageSize
	}
	f.Search = in.Search
	return f
}

func storeInfoFromDomain(s *catalog.Store) StoreInfo {
	return StoreInfo{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}

func productInfoFromDomain(p *catalog.Product) ProductInfo {
	return ProductInfo{
		ID:          p.ID,
		StoreID:     p.StoreID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
	}
}
