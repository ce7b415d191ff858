package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/swiftbasket/backend/internal/domain/catalog"
	"github.com/swiftbasket/backend/internal/domain/review"
	"github.com/swiftbasket/backend/internal/domain/shared"
	"github.com/swiftbasket/backend/internal/infrastructure/social"
)

// ProductService handles product listings
type ProductService struct {
	productRepo catalog.ProductRepository
	storeRepo   catalog.StoreRepository
	reviewRepo  review.ReviewRepository
	publisher   social.Publisher
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo catalog.ProductRepository,
	storeRepo catalog.StoreRepository,
	reviewRepo review.ReviewRepository,
	publisher social.Publisher,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		storeRepo:   storeRepo,
		reviewRepo:  reviewRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Create lists a product in the vendor's store. Name uniqueness within
// the store rides on the unique index over (store_id, name). A new
// listing is announced on the social platform; posting failures never
// fail the listing.
func (s *ProductService) Create(ctx context.Context, ownerID uuid.UUID, input CreateProductInput) (*ProductInfo, error) {
	store, err := s.storeRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("NO_STORE", "Vendor has no store yet")
		}
		return nil, err
	}

	product, err := catalog.NewProduct(store.ID, input.Name, input.Description, input.ImageURL, input.Price)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		if shared.IsAlreadyExists(err) {
			return nil, shared.NewDomainError("PRODUCT_EXISTS", "Store already has a product with this name")
		}
		s.logger.Error("Failed to save product", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product listed",
		zap.String("product_id", product.ID.String()),
		zap.String("store_id", store.ID.String()),
		zap.String("name", product.Name),
	)

	if err := s.publisher.Publish(ctx, social.ProductListedPost(store.Name, product.Name, product.Price)); err != nil {
		s.logger.Warn("Failed to announce product",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}

	info := productInfoFromDomain(product)
	return &info, nil
}

// Get returns a product by ID with its review aggregates
func (s *ProductService) Get(ctx context.Context, productID uuid.UUID) (*ProductDetail, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	avg, err := s.reviewRepo.AvgRatingByProduct(ctx, product.ID)
	if err != nil {
		s.logger.Error("Failed to average product ratings",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	count, err := s.reviewRepo.CountByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	return &ProductDetail{
		ProductInfo: productInfoFromDomain(product),
		AvgRating:   avg,
		ReviewCount: count,
	}, nil
}

// List returns products with pagination and name search
func (s *ProductService) List(ctx context.Context, input ListInput) (*shared.Paginated[ProductInfo], error) {
	filter := input.Filter()

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]ProductInfo, len(products))
	for i := range products {
		infos[i] = productInfoFromDomain(&products[i])
	}
	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByStore returns a store's products with pagination
func (s *ProductService) ListByStore(ctx context.Context, storeID uuid.UUID, input ListInput) ([]ProductInfo, error) {
	products, err := s.productRepo.FindByStore(ctx, storeID, input.Filter())
	if err != nil {
		return nil, err
	}

	infos := make([]ProductInfo, len(products))
	for i := range products {
		infos[i] = productInfoFromDomain(&products[i])
	}
	return infos, nil
}

// Update changes a product listing. Only the store owner may update.
func (s *ProductService) Update(ctx context.Context, ownerID, productID uuid.UUID, input UpdateProductInput) (*ProductInfo, error) {
	product, err := s.ownedProduct(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(input.Name, input.Description, input.ImageURL, input.Price); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		if shared.IsAlreadyExists(err) {
			return nil, shared.NewDomainError("PRODUCT_EXISTS", "Store already has a product with this name")
		}
		s.logger.Error("Failed to update product", zap.Error(err))
		return nil, err
	}

	info := productInfoFromDomain(product)
	return &info, nil
}

// Delete removes a product listing. Only the store owner may delete.
// Past orders keep their own name and price snapshots, so they are
// unaffected.
func (s *ProductService) Delete(ctx context.Context, ownerID, productID uuid.UUID) error {
	product, err := s.ownedProduct(ctx, ownerID, productID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		s.logger.Error("Failed to delete product", zap.Error(err))
		return err
	}

	s.logger.Info("Product delisted",
		zap.String("product_id", product.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	return nil
}

func (s *ProductService) ownedProduct(ctx context.Context, ownerID, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	store, err := s.storeRepo.FindByID(ctx, product.StoreID)
	if err != nil {
		return nil, err
	}
	if !store.IsOwnedBy(ownerID) {
		return nil, shared.ErrForbidden
	}
	return product, nil
}
