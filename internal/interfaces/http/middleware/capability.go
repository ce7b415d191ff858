package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CapabilityConfig holds configuration for capability middleware
type CapabilityConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
}

// RequireCapability creates middleware that requires a capability in
// "resource:action" form. Capabilities are read from the token claims,
// which carry the role's full capability set from issue time.
func RequireCapability(capability string) gin.HandlerFunc {
	return RequireCapabilityWithConfig(capability, CapabilityConfig{})
}

// RequireCapabilityWithConfig creates capability middleware with custom config
func RequireCapabilityWithConfig(capability string, cfg CapabilityConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleCapabilityDenied(c, cfg, capability, "No authentication claims found")
			return
		}

		if !claims.HasCapability(capability) {
			handleCapabilityDenied(c, cfg, capability, "Role does not grant capability")
			return
		}

		c.Next()
	}
}

// RequireCapabilityIfAuthenticated lets anonymous requests through and
// enforces the capability only when token claims are present. Cart
// endpoints use this: visitors shop freely against a session cart, but
// a logged-in caller needs the cart capability to touch a stored cart.
func RequireCapabilityIfAuthenticated(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.Next()
			return
		}

		if !claims.HasCapability(capability) {
			handleCapabilityDenied(c, CapabilityConfig{}, capability, "Role does not grant capability")
			return
		}

		c.Next()
	}
}

// RequireAnyCapability creates middleware that passes when the claims
// hold at least one of the capabilities
func RequireAnyCapability(capabilities ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleCapabilityDenied(c, CapabilityConfig{}, "", "No authentication claims found")
			return
		}

		for _, capability := range capabilities {
			if claims.HasCapability(capability) {
				c.Next()
				return
			}
		}

		handleCapabilityDenied(c, CapabilityConfig{}, "", "Role does not grant any required capability")
	}
}

func handleCapabilityDenied(c *gin.Context, cfg CapabilityConfig, capability, reason string) {
	if cfg.Logger != nil {
		claims := GetJWTClaims(c)
		userID := ""
		granted := []string{}
		if claims != nil {
			userID = claims.UserID
			granted = claims.Capabilities
		}

		cfg.Logger.Warn("Capability denied",
			zap.String("reason", reason),
			zap.String("user_id", userID),
			zap.String("required", capability),
			zap.Strings("granted", granted),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_FORBIDDEN",
			"message": "Access denied: insufficient capabilities",
		},
	})
}
