package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSessionExtractsHeader(t *testing.T) {
	engine := gin.New()
	engine.Use(Session())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionID(c))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(SessionHeaderKey, "sess-abc")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess-abc", w.Body.String())
}

func TestSessionMissingHeader(t *testing.T) {
	engine := gin.New()
	engine.Use(Session())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionID(c))
	})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestSessionRejectsOversizedID(t *testing.T) {
	engine := gin.New()
	engine.Use(Session())
	engine.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(SessionHeaderKey, strings.Repeat("x", MaxSessionIDLength+1))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartKeyPrefersUser(t *testing.T) {
	userID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Set(JWTUserIDKey, userID.String())
	c.Set(SessionIDKey, "sess-abc")

	key, ok := CartKey(c)
	require.True(t, ok)
	assert.False(t, key.IsAnonymous())
	assert.Equal(t, userID, key.UserID)
}

func TestCartKeyFallsBackToSession(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Set(SessionIDKey, "sess-abc")

	key, ok := CartKey(c)
	require.True(t, ok)
	assert.True(t, key.IsAnonymous())
	assert.Equal(t, "sess-abc", key.SessionID)
}

func TestCartKeyNoIdentity(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	_, ok := CartKey(c)
	assert.False(t, ok)
}
