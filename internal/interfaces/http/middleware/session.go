package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/domain/cart"
)

// SessionHeaderKey is the header anonymous visitors present to claim
// their session cart
const SessionHeaderKey = "X-Session-ID"

// SessionIDKey is the gin context key for the session ID
const SessionIDKey = "session_id"

// MaxSessionIDLength caps the session ID; longer values are garbage
const MaxSessionIDLength = 128

// Session extracts the X-Session-ID header into the context. The
// server never mints session IDs, the client owns them.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeaderKey)
		if len(sessionID) > MaxSessionIDLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_BAD_REQUEST",
					"message": "Session ID is too long",
				},
			})
			return
		}
		if sessionID != "" {
			c.Set(SessionIDKey, sessionID)
		}
		c.Next()
	}
}

// GetSessionID retrieves the session ID from the context
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// CartKey resolves whose cart a request targets: an authenticated
// user's stored cart when a valid token is present, otherwise the
// session cart named by X-Session-ID. Returns false when neither
// identity is available.
func CartKey(c *gin.Context) (cart.Key, bool) {
	if userIDStr := GetJWTUserID(c); userIDStr != "" {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			return cart.ForUser(userID), true
		}
	}
	if sessionID := GetSessionID(c); sessionID != "" {
		return cart.ForSession(sessionID), true
	}
	return cart.Key{}, false
}
