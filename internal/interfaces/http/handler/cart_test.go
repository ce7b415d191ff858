package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/swiftbasket/backend/internal/application/cart"
	"github.com/swiftbasket/backend/internal/domain/catalog"
	"github.com/swiftbasket/backend/internal/domain/shared"
	"github.com/swiftbasket/backend/internal/infrastructure/cache"
	"github.com/swiftbasket/backend/internal/interfaces/http/dto"
	"github.com/swiftbasket/backend/internal/interfaces/http/middleware"
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func newTestProduct(t *testing.T, name string, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(uuid.New(), name, "", "", decimal.RequireFromString(price))
	require.NoError(t, err)
	return p
}

// newCartTestServer builds a gin engine with cart routes backed by a
// real cart service over in-memory stores
func newCartTestServer(productRepo *MockProductRepository) *gin.Engine {
	service := cartapp.NewService(cache.NewMemoryCartStore(), cache.NewMemoryCartStore(), productRepo, zap.NewNop())
	h := NewCartHandler(service)

	engine := gin.New()
	cart := engine.Group("/api/v1/cart", middleware.Session())
	cart.GET("", h.Get)
	cart.POST("/items", h.Add)
	cart.PUT("/items/:productId", h.SetQuantity)
	cart.DELETE("/items/:productId", h.Remove)
	cart.DELETE("", h.Clear)
	return engine
}

func cartRequest(t *testing.T, engine *gin.Engine, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeaderKey, sessionID)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCartAddAndGet(t *testing.T) {
	product := newTestProduct(t, "Woven Basket", "149.50")
	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)

	engine := newCartTestServer(productRepo)

	w := cartRequest(t, engine, "POST", "/api/v1/cart/items", "sess-1", gin.H{
		"product_id": product.ID.String(),
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = cartRequest(t, engine, "GET", "/api/v1/cart", "sess-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(2), data["total_quantity"])
	assert.Equal(t, "299", data["total"])
}

func TestCartWithoutIdentity(t *testing.T) {
	engine := newCartTestServer(new(MockProductRepository))

	w := cartRequest(t, engine, "GET", "/api/v1/cart", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartSessionsAreIsolated(t *testing.T) {
	product := newTestProduct(t, "Woven Basket", "149.50")
	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)

	engine := newCartTestServer(productRepo)

	w := cartRequest(t, engine, "POST", "/api/v1/cart/items", "sess-a", gin.H{
		"product_id": product.ID.String(),
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = cartRequest(t, engine, "GET", "/api/v1/cart", "sess-b", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(0), data["total_quantity"])
}

func TestCartSetQuantityZeroRemoves(t *testing.T) {
	product := newTestProduct(t, "Woven Basket", "149.50")
	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)

	engine := newCartTestServer(productRepo)

	w := cartRequest(t, engine, "POST", "/api/v1/cart/items", "sess-1", gin.H{
		"product_id": product.ID.String(),
		"quantity":   3,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = cartRequest(t, engine, "PUT", "/api/v1/cart/items/"+product.ID.String(), "sess-1", gin.H{
		"quantity": 0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(0), data["total_quantity"])
}

func TestCartAddUnknownProduct(t *testing.T) {
	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	engine := newCartTestServer(productRepo)

	w := cartRequest(t, engine, "POST", "/api/v1/cart/items", "sess-1", gin.H{
		"product_id": uuid.New().String(),
		"quantity":   1,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
