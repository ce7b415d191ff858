package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/swiftbasket/backend/internal/infrastructure/auth"
)

func capabilityEngine(capability string, claims *auth.Claims) *gin.Engine {
	engine := gin.New()
	engine.GET("/guarded",
		func(c *gin.Context) {
			if claims != nil {
				c.Set(JWTClaimsKey, claims)
			}
			c.Next()
		},
		RequireCapability(capability),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		},
	)
	return engine
}

func TestRequireCapabilityGranted(t *testing.T) {
	claims := &auth.Claims{
		UserID:       "u1",
		Role:         "vendor",
		Capabilities: []string{"store:create", "product:create"},
	}
	engine := capabilityEngine("store:create", claims)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/guarded", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireCapabilityDenied(t *testing.T) {
	claims := &auth.Claims{
		UserID:       "u1",
		Role:         "buyer",
		Capabilities: []string{"cart:manage", "order:create"},
	}
	engine := capabilityEngine("store:create", claims)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/guarded", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireCapabilityNoClaims(t *testing.T) {
	engine := capabilityEngine("store:create", nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/guarded", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireCapabilityIfAuthenticated(t *testing.T) {
	newEngine := func(claims *auth.Claims) *gin.Engine {
		engine := gin.New()
		engine.GET("/cart",
			func(c *gin.Context) {
				if claims != nil {
					c.Set(JWTClaimsKey, claims)
				}
				c.Next()
			},
			RequireCapabilityIfAuthenticated("cart:manage"),
			func(c *gin.Context) {
				c.Status(http.StatusOK)
			},
		)
		return engine
	}

	// anonymous requests pass straight through
	w := httptest.NewRecorder()
	newEngine(nil).ServeHTTP(w, httptest.NewRequest("GET", "/cart", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// a buyer token carries the cart capability
	buyer := &auth.Claims{
		UserID:       "u1",
		Role:         "buyer",
		Capabilities: []string{"cart:manage", "order:create"},
	}
	w = httptest.NewRecorder()
	newEngine(buyer).ServeHTTP(w, httptest.NewRequest("GET", "/cart", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// a vendor token does not
	vendor := &auth.Claims{
		UserID:       "u2",
		Role:         "vendor",
		Capabilities: []string{"store:create", "product:create"},
	}
	w = httptest.NewRecorder()
	newEngine(vendor).ServeHTTP(w, httptest.NewRequest("GET", "/cart", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAnyCapability(t *testing.T) {
	claims := &auth.Claims{
		UserID:       "u1",
		Role:         "buyer",
		Capabilities: []string{"order:read"},
	}

	engine := gin.New()
	engine.GET("/guarded",
		func(c *gin.Context) {
			c.Set(JWTClaimsKey, claims)
			c.Next()
		},
		RequireAnyCapability("store:create", "order:read"),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		},
	)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/guarded", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
