package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	userID := uuid.New()
	token, raw, err := NewResetToken(userID)
	require.NoError(t, err)

	assert.NotEmpty(t, raw)
	assert.Equal(t, userID, token.UserID)
	assert.Equal(t, HashResetToken(raw), token.TokenHash)
	assert.NotEqual(t, raw, token.TokenHash)
	assert.False(t, token.IsUsed())
	assert.False(t, token.IsExpired(time.Now()))
	assert.WithinDuration(t, time.Now().Add(ResetTokenTTL), token.ExpiresAt, time.Second)
}

func TestResetTokenConsume(t *testing.T) {
	token, _, err := NewResetToken(uuid.New())
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, token.Consume(now))
	assert.True(t, token.IsUsed())

	// second consume is rejected
	assert.Error(t, token.Consume(now))
}

func TestResetTokenExpiry(t *testing.T) {
	token, _, err := NewResetToken(uuid.New())
	require.NoError(t, err)

	late := token.ExpiresAt.Add(time.Second)
	assert.True(t, token.IsExpired(late))
	assert.Error(t, token.Consume(late))
	assert.False(t, token.IsUsed())
}

func TestResetTokensAreUnique(t *testing.T) {
	_, raw1, err := NewResetToken(uuid.New())
	require.NoError(t, err)
	_, raw2, err := NewResetToken(uuid.New())
	require.NoError(t, err)
	assert.NotEqual(t, raw1, raw2)
}
