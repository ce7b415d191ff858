package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftbasket/backend/internal/infrastructure/config"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-that-is-long-enough-32",
		AccessTokenExpiration: time.Hour,
		Issuer:                "swiftbasket-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()

	issued, err := svc.GenerateToken(GenerateTokenInput{
		UserID:       userID,
		Username:     "alice",
		Role:         "buyer",
		Capabilities: []string{"cart:manage", "order:create"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", issued.TokenType)

	claims, err := svc.ValidateToken(issued.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "buyer", claims.Role)
	assert.True(t, claims.HasCapability("cart:manage"))
	assert.False(t, claims.HasCapability("store:create"))

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
	assert.Greater(t, claims.GetRemainingTTL(), time.Duration(0))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := testJWTService()

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := testJWTService()
	other := NewJWTService(config.JWTConfig{
		Secret:                "a-different-secret-also-long-enough",
		AccessTokenExpiration: time.Hour,
		Issuer:                "swiftbasket-test",
	})

	issued, err := other.GenerateToken(GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "alice",
		Role:     "buyer",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(issued.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-that-is-long-enough-32",
		AccessTokenExpiration: -time.Minute,
		Issuer:                "swiftbasket-test",
	})

	issued, err := svc.GenerateToken(GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "alice",
		Role:     "buyer",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(issued.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
