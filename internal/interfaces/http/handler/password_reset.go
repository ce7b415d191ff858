package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/swiftbasket/backend/internal/application/identity"
	"github.com/swiftbasket/backend/internal/interfaces/http/middleware"
)

// PasswordResetHandler handles the password reset flow
type PasswordResetHandler struct {
	BaseHandler
	resetService *identity.PasswordResetService
}

// NewPasswordResetHandler creates a new password reset handler
func NewPasswordResetHandler(resetService *identity.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resetService: resetService}
}

// RequestResetRequest is the request body for requesting a reset link
type RequestResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ValidateResetRequest is the request body for validating a reset token
type ValidateResetRequest struct {
	Token string `json:"token" binding:"required"`
}

// ConsumeResetRequest is the request body for completing a reset. The
// two password fields must match; a mismatch keeps the token valid.
type ConsumeResetRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// Request handles POST /api/v1/password-reset/request. The response
// is the same whether or not the email belongs to an account.
func (h *PasswordResetHandler) Request(c *gin.Context) {
	var req RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.resetService.Request(c.Request.Context(), identity.RequestResetInput{
		Email: req.Email,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "If that email is registered, a reset link has been sent"})
}

// Validate handles POST /api/v1/password-reset/validate
func (h *PasswordResetHandler) Validate(c *gin.Context) {
	var req ValidateResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.resetService.Validate(c.Request.Context(), req.Token); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"valid": true})
}

// Consume handles POST /api/v1/password-reset/confirm
func (h *PasswordResetHandler) Consume(c *gin.Context) {
	var req ConsumeResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	role, err := h.resetService.Consume(c.Request.Context(), identity.ConsumeResetInput{
		Token:           req.Token,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password has been reset", "role": role})
}
