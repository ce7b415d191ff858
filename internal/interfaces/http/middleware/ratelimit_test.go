package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)

	assert.True(t, limiter.Allow("client-1"))
	assert.True(t, limiter.Allow("client-1"))
	assert.False(t, limiter.Allow("client-1"))

	// other clients have their own window
	assert.True(t, limiter.Allow("client-2"))
}

func TestRateLimiterWindowReset(t *testing.T) {
	limiter := NewRateLimiter(1, 10*time.Millisecond)

	assert.True(t, limiter.Allow("client-1"))
	assert.False(t, limiter.Allow("client-1"))

	time.Sleep(15 * time.Millisecond)
	assert.True(t, limiter.Allow("client-1"))
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)

	engine := gin.New()
	engine.Use(RateLimit(limiter))
	engine.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitByKey(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)

	engine := gin.New()
	engine.POST("/reset", RateLimitByKey(limiter, func(c *gin.Context) string {
		return c.GetHeader("X-Target")
	}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(target string) int {
		req := httptest.NewRequest("POST", "/reset", nil)
		req.Header.Set("X-Target", target)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("a@example.com"))
	assert.Equal(t, http.StatusTooManyRequests, send("a@example.com"))
	assert.Equal(t, http.StatusOK, send("b@example.com"))
}
