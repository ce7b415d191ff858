package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/application/order"
	"github.com/swiftbasket/backend/internal/interfaces/http/dto"
	"github.com/swiftbasket/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles checkout and order history endpoints
type OrderHandler struct {
	BaseHandler
	checkoutService *order.CheckoutService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(checkoutService *order.CheckoutService) *OrderHandler {
	return &OrderHandler{checkoutService: checkoutService}
}

// Checkout handles POST /api/v1/checkout. The buyer's stored cart is
// converted into an order and an invoice is emailed afterwards.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	placed, err := h.checkoutService.Checkout(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, placed)
}

// List handles GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	orders, err := h.checkoutService.List(c.Request.Context(), userID, order.ListInput{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	info, err := h.checkoutService.Get(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}
