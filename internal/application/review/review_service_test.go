package review

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
	"github.com/swiftbasket/backend/internal/domain/order"
	"github.com/swiftbasket/backend/internal/domain/review"
	"github.com/swiftbasket/backend/internal/domain/shared"
)

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

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Place(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, buyerID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) HasPurchased(ctx context.Context, buyerID uuid.UUID, productName string) (bool, error) {
	args := m.Called(ctx, buyerID, productName)
	return args.Bool(0), args.Error(1)
}

func newTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(uuid.New(), "Woven Basket", "", "", decimal.NewFromInt(25))
	require.NoError(t, err)
	return p
}

func TestReviewService_Create_VerifiedPurchaser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	product := newTestProduct(t)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("HasPurchased", ctx, userID, "Woven Basket").Return(true, nil)

	reviewRepo := new(MockReviewRepository)
	reviewRepo.On("Save", ctx, mock.AnythingOfType("*review.Review")).Return(nil)

	svc := NewService(reviewRepo, productRepo, orderRepo, zap.NewNop())

	info, err := svc.Create(ctx, userID, CreateInput{
		ProductID: product.ID,
		Rating:    5,
		Comment:   "Lovely work",
	})

	require.NoError(t, err)
	assert.True(t, info.IsVerified)
	assert.Equal(t, 5, info.Rating)
	reviewRepo.AssertExpectations(t)
}

func TestReviewService_Create_UnverifiedWithoutPurchase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	product := newTestProduct(t)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("HasPurchased", ctx, userID, "Woven Basket").Return(false, nil)

	reviewRepo := new(MockReviewRepository)
	reviewRepo.On("Save", ctx, mock.AnythingOfType("*review.Review")).Return(nil)

	svc := NewService(reviewRepo, productRepo, orderRepo, zap.NewNop())

	info, err := svc.Create(ctx, userID, CreateInput{
		ProductID: product.ID,
		Rating:    2,
	})

	require.NoError(t, err)
	assert.False(t, info.IsVerified)
}

func TestReviewService_Create_DuplicateRejected(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	product := newTestProduct(t)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("HasPurchased", ctx, userID, "Woven Basket").Return(true, nil)

	reviewRepo := new(MockReviewRepository)
	reviewRepo.On("Save", ctx, mock.AnythingOfType("*review.Review")).Return(shared.ErrAlreadyExists)

	svc := NewService(reviewRepo, productRepo, orderRepo, zap.NewNop())

	_, err := svc.Create(ctx, userID, CreateInput{ProductID: product.ID, Rating: 4})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_REVIEWED", domainErr.Code)
}

func TestReviewService_Create_InvalidRating(t *testing.T) {
	ctx := context.Background()
	product := newTestProduct(t)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("HasPurchased", ctx, mock.Anything, mock.Anything).Return(false, nil)

	svc := NewService(new(MockReviewRepository), productRepo, orderRepo, zap.NewNop())

	_, err := svc.Create(ctx, uuid.New(), CreateInput{ProductID: product.ID, Rating: 6})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestReviewService_Create_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", ctx, mock.Anything).Return(nil, shared.ErrNotFound)

	svc := NewService(new(MockReviewRepository), productRepo, new(MockOrderRepository), zap.NewNop())

	_, err := svc.Create(ctx, uuid.New(), CreateInput{ProductID: uuid.New(), Rating: 3})
	require.Error(t, err)
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestReviewService_ListByProduct(t *testing.T) {
	ctx := context.Background()
	product := newTestProduct(t)

	r1, err := review.NewReview(product.ID, uuid.New(), 5, "Great", true)
	require.NoError(t, err)
	r2, err := review.NewReview(product.ID, uuid.New(), 3, "", false)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	reviewRepo := new(MockReviewRepository)
	reviewRepo.On("FindByProduct", ctx, product.ID, mock.AnythingOfType("shared.Filter")).
		Return([]review.Review{*r1, *r2}, nil)
	reviewRepo.On("CountByProduct", ctx, product.ID).Return(int64(2), nil)
	reviewRepo.On("AvgRatingByProduct", ctx, product.ID).Return(4.0, nil)

	svc := NewService(reviewRepo, productRepo, new(MockOrderRepository), zap.NewNop())

	result, err := svc.ListByProduct(ctx, product.ID, ListInput{})
	require.NoError(t, err)
	require.Len(t, result.Reviews, 2)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, 4.0, result.AvgRating)
	assert.True(t, result.Reviews[0].IsVerified)
}
