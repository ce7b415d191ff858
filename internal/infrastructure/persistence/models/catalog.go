package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swiftbasket/backend/internal/domain/catalog"
)

// StoreModel is the persistence model for the Store domain entity.
// The unique index on OwnerID enforces one store per vendor.
type StoreModel struct {
	AggregateModel
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store entity.
func (m *StoreModel) ToDomain() *catalog.Store {
	return &catalog.Store{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OwnerID:           m.OwnerID,
		Name:              m.Name,
		Description:       m.Description,
	}
}

// FromDomain populates the persistence model from a domain Store entity.
func (m *StoreModel) FromDomain(s *catalog.Store) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.OwnerID = s.OwnerID
	m.Name = s.Name
	m.Description = s.Description
}

// StoreModelFromDomain creates a new persistence model from a domain Store entity.
func StoreModelFromDomain(s *catalog.Store) *StoreModel {
	m := &StoreModel{}
	m.FromDomain(s)
	return m
}

// ProductModel is the persistence model for the Product domain entity.
// The composite unique index enforces distinct product names per store.
type ProductModel struct {
	AggregateModel
	StoreID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_products_store_name"`
	Name        string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_products_store_name"`
	Description string          `gorm:"type:text"`
	ImageURL    string          `gorm:"type:varchar(500)"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		StoreID:           m.StoreID,
		Name:              m.Name,
		Description:       m.Description,
		ImageURL:          m.ImageURL,
		Price:             m.Price,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.StoreID = p.StoreID
	m.Name = p.Name
	m.Description = p.Description
	m.ImageURL = p.ImageURL
	m.Price = p.Price
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
