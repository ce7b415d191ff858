package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/application/cart"
	domaincart "github.com/swiftbasket/backend/internal/domain/cart"
	"github.com/swiftbasket/backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints for both anonymous sessions and
// authenticated buyers
type CartHandler struct {
	BaseHandler
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// CartItemRequest is the request body for cart mutations
type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required"`
}

func (h *CartHandler) cartKey(c *gin.Context) (domaincart.Key, bool) {
	key, ok := middleware.CartKey(c)
	if !ok {
		h.BadRequest(c, "Provide a bearer token or an X-Session-ID header")
		return domaincart.Key{}, false
	}
	return key, true
}

// Get handles GET /api/v1/cart
func (h *CartHandler) Get(c *gin.Context) {
	key, ok := h.cartKey(c)
	if !ok {
		return
	}

	info, err := h.cartService.Get(c.Request.Context(), key)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Add handles POST /api/v1/cart/items
func (h *CartHandler) Add(c *gin.Context) {
	key, ok := h.cartKey(c)
	if !ok {
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	info, err := h.cartService.Add(c.Request.Context(), key, cart.ItemInput{
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// SetQuantity handles PUT /api/v1/cart/items/:productId. A quantity
// of zero or less removes the line.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	key, ok := h.cartKey(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	info, err := h.cartService.SetQuantity(c.Request.Context(), key, cart.ItemInput{
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Remove handles DELETE /api/v1/cart/items/:productId
func (h *CartHandler) Remove(c *gin.Context) {
	key, ok := h.cartKey(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	info, err := h.cartService.Remove(c.Request.Context(), key, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	key, ok := h.cartKey(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), key); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
