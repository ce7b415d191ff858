package review

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	productID := uuid.New()
	userID := uuid.New()

	r, err := NewReview(productID, userID, 4, "  great  ", true)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Rating)
	assert.Equal(t, "great", r.Comment)
	assert.True(t, r.IsVerified)

	r, err = NewReview(productID, userID, 1, "", false)
	require.NoError(t, err)
	assert.False(t, r.IsVerified)
}

func TestNewReviewValidation(t *testing.T) {
	productID := uuid.New()
	userID := uuid.New()

	_, err := NewReview(uuid.Nil, userID, 3, "", false)
	assert.Error(t, err)

	_, err = NewReview(productID, uuid.Nil, 3, "", false)
	assert.Error(t, err)

	_, err = NewReview(productID, userID, 0, "", false)
	assert.Error(t, err)

	_, err = NewReview(productID, userID, 6, "", false)
	assert.Error(t, err)
}
