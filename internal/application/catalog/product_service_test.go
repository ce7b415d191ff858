package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swiftbasket/backend/internal/domain/catalog"
	"github.com/swiftbasket/backend/internal/domain/review"
	"github.com/swiftbasket/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

// MockReviewRepository is a mock implementation of review.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Save(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]review.Review, error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) AvgRatingByProduct(ctx context.Context, productID uuid.UUID) (float64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(float64), args.Error(1)
}

func createTestStore(t *testing.T, ownerID uuid.UUID) *catalog.Store {
	t.Helper()
	store, err := catalog.NewStore(ownerID, "Karoo Crafts", "")
	require.NoError(t, err)
	return store
}

func TestProductService_Create_Success(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	store := createTestStore(t, ownerID)

	storeRepo := new(MockStoreRepository)
	storeRepo.On("FindByOwner", ctx, ownerID).Return(store, nil)

	productRepo := new(MockProductRepository)
	productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	publisher := &capturePublisher{}
	svc := NewProductService(productRepo, storeRepo, new(MockReviewRepository), publisher, zap.NewNop())

	info, err := svc.Create(ctx, ownerID, CreateProductInput{
		Name:        "Woven Basket",
		Description: "Hand woven",
		Price:       decimal.RequireFromString("149.50"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Woven Basket", info.Name)
	assert.Equal(t, store.ID, info.StoreID)

	require.Len(t, publisher.posts, 1)
	assert.Equal(t, "New on SwiftBasket: Karoo Crafts now sells Woven Basket for R 149.50!", publisher.posts[0])

	productRepo.AssertExpectations(t)
}

func TestProductService_Create_WithoutStore(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	storeRepo := new(MockStoreRepository)
	storeRepo.On("FindByOwner", ctx, ownerID).Return(nil, shared.ErrNotFound)

	svc := NewProductService(new(MockProductRepository), storeRepo, new(MockReviewRepository), &capturePublisher{}, zap.NewNop())

	_, err := svc.Create(ctx, ownerID, CreateProductInput{
		Name:  "Orphan Product",
		Price: decimal.NewFromInt(10),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_STORE", domainErr.Code)
}

func TestProductService_Create_DuplicateNameInStore(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	store := createTestStore(t, ownerID)

	storeRepo := new(MockStoreRepository)
	storeRepo.On("FindByOwner", ctx, ownerID).Return(store, nil)

	productRepo := new(MockProductRepository)
	productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(shared.ErrAlreadyExists)

	svc := NewProductService(productRepo, storeRepo, new(MockReviewRepository), &capturePublisher{}, zap.NewNop())

	_, err := svc.Create(ctx, ownerID, CreateProductInput{
		Name:  "Woven Basket",
		Price: decimal.NewFromInt(100),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_EXISTS", domainErr.Code)
}

func TestProductService_Create_NegativePrice(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	store := createTestStore(t, ownerID)

	storeRepo := new(MockStoreRepository)
	storeRepo.On("FindByOwner", ctx, ownerID).Return(store, nil)

	svc := NewProductService(new(MockProductRepository), storeRepo, new(MockReviewRepository), &capturePublisher{}, zap.NewNop())

	_, err := svc.Create(ctx, ownerID, CreateProductInput{
		Name:  "Negative",
		Price: decimal.NewFromInt(-5),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestProductService_Get_WithReviewAggregates(t *testing.T) {
	ctx := context.Background()
	product, err := catalog.NewProduct(uuid.New(), "Woven Basket", "Hand woven", "https://img.example/basket.jpg", decimal.NewFromInt(100))
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	reviewRepo := new(MockReviewRepository)
	reviewRepo.On("AvgRatingByProduct", ctx, product.ID).Return(4.5, nil)
	reviewRepo.On("CountByProduct", ctx, product.ID).Return(int64(2), nil)

	svc := NewProductService(productRepo, new(MockStoreRepository), reviewRepo, &capturePublisher{}, zap.NewNop())

	detail, err := svc.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Woven Basket", detail.Name)
	assert.Equal(t, "https://img.example/basket.jpg", detail.ImageURL)
	assert.Equal(t, 4.5, detail.AvgRating)
	assert.Equal(t, int64(2), detail.ReviewCount)
	reviewRepo.AssertExpectations(t)
}

func TestProductService_Create_KeepsImageURL(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	store := createTestStore(t, ownerID)

	storeRepo := new(MockStoreRepository)
	storeRepo.On("FindByOwner", ctx, ownerID).Return(store, nil)

	productRepo := new(MockProductRepository)
	productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	svc := NewProductService(productRepo, storeRepo, new(MockReviewRepository), &capturePublisher{}, zap.NewNop())

	info, err := svc.Create(ctx, ownerID, CreateProductInput{
		Name:     "Woven Basket",
		ImageURL: "https://img.example/basket.jpg",
		Price:    decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/basket.jpg", info.ImageURL)
}

func TestProductService_Update_OnlyStoreOwner(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	store := createTestStore(t, ownerID)
	product, err := catalog.NewProduct(store.ID, "Woven Basket", "", "", decimal.NewFromInt(100))
	require.NoError(t, err)

	storeRepo := new(MockStoreRepository)
	storeRepo.On("FindByID", ctx, store.ID).Return(store, nil)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	svc := NewProductService(productRepo, storeRepo, new(MockReviewRepository), &capturePublisher{}, zap.NewNop())

	_, err = svc.Update(ctx, uuid.New(), product.ID, UpdateProductInput{
		Name:  "Stolen Basket",
		Price: decimal.NewFromInt(1),
	})

	require.Error(t, err)
	assert.Equal(t, shared.ErrForbidden, err)
	assert.Equal(t, "Woven Basket", product.Name)
}

func TestProductService_Delete_Success(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	store := createTestStore(t, ownerID)
	product, err := catalog.NewProduct(store.ID, "Woven Basket", "", "", decimal.NewFromInt(100))
	require.NoError(t, err)

	storeRepo := new(MockStoreRepository)
	storeRepo.On("FindByID", ctx, store.ID).Return(store, nil)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	productRepo.On("Delete", ctx, product.ID).Return(nil)

	svc := NewProductService(productRepo, storeRepo, new(MockReviewRepository), &capturePublisher{}, zap.NewNop())

	require.NoError(t, svc.Delete(ctx, ownerID, product.ID))
	productRepo.AssertExpectations(t)
}

func TestProductService_ListByStore(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	p1, err := catalog.NewProduct(storeID, "First", "", "", decimal.NewFromInt(10))
	require.NoError(t, err)
	p2, err := catalog.NewProduct(storeID, "Second", "", "", decimal.NewFromInt(20))
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByStore", ctx, storeID, mock.AnythingOfType("shared.Filter")).
		Return([]catalog.Product{*p1, *p2}, nil)

	svc := NewProductService(productRepo, new(MockStoreRepository), new(MockReviewRepository), &capturePublisher{}, zap.NewNop())

	infos, err := svc.ListByStore(ctx, storeID, ListInput{})
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "First", infos[0].Name)
}
