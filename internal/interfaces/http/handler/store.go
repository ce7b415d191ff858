package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/application/catalog"
	"github.com/swiftbasket/backend/internal/interfaces/http/dto"
	"github.com/swiftbasket/backend/internal/interfaces/http/middleware"
)

// StoreHandler handles store endpoints
type StoreHandler struct {
	BaseHandler
	storeService   *catalog.StoreService
	productService *catalog.ProductService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService *catalog.StoreService, productService *catalog.ProductService) *StoreHandler {
	return &StoreHandler{storeService: storeService, productService: productService}
}

// CreateStoreRequest is the request body for opening a store
type CreateStoreRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateStoreRequest is the request body for updating a store
type UpdateStoreRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// Create handles POST /api/v1/stores
func (h *StoreHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	store, err := h.storeService.Create(c.Request.Context(), userID, catalog.CreateStoreInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, store)
}

// List handles GET /api/v1/stores
func (h *StoreHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	page, err := h.storeService.List(c.Request.Context(), catalog.ListInput{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get handles GET /api/v1/stores/:id
func (h *StoreHandler) Get(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	store, err := h.storeService.Get(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, store)
}

// GetMine handles GET /api/v1/stores/mine
func (h *StoreHandler) GetMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	store, err := h.storeService.GetMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, store)
}

// Update handles PUT /api/v1/stores/:id
func (h *StoreHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	store, err := h.storeService.Update(c.Request.Context(), userID, storeID, catalog.UpdateStoreInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, store)
}

// Delete handles DELETE /api/v1/stores/:id
func (h *StoreHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	if err := h.storeService.Delete(c.Request.Context(), userID, storeID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListProducts handles GET /api/v1/stores/:id/products
func (h *StoreHandler) ListProducts(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	products, err := h.productService.ListByStore(c.Request.Context(), storeID, catalog.ListInput{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}
