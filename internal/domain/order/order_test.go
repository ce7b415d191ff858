package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderItem(t *testing.T) {
	item, err := NewOrderItem(uuid.New(), "Honey", decimal.NewFromFloat(12.50), 2)
	require.NoError(t, err)
	assert.Equal(t, "Honey", item.ProductName)
	assert.Equal(t, 2, item.Quantity)
	// line price is unit price times quantity
	assert.True(t, item.Price.Equal(decimal.NewFromInt(25)))

	_, err = NewOrderItem(uuid.New(), "Honey", decimal.NewFromInt(1), 0)
	assert.Error(t, err)

	_, err = NewOrderItem(uuid.New(), "", decimal.NewFromInt(1), 1)
	assert.Error(t, err)
}

func TestNewOrder(t *testing.T) {
	buyer := uuid.New()
	item1, err := NewOrderItem(uuid.New(), "Honey", decimal.NewFromInt(10), 2)
	require.NoError(t, err)
	item2, err := NewOrderItem(uuid.New(), "Bread", decimal.NewFromFloat(2.50), 2)
	require.NoError(t, err)

	o, err := NewOrder(buyer, []OrderItem{item1, item2})
	require.NoError(t, err)
	assert.Equal(t, buyer, o.BuyerID)
	assert.Len(t, o.Items, 2)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(25)))
	for _, item := range o.Items {
		assert.Equal(t, o.ID, item.OrderID)
	}
}

func TestNewOrderRejectsEmpty(t *testing.T) {
	_, err := NewOrder(uuid.New(), nil)
	assert.Error(t, err)

	_, err = NewOrder(uuid.Nil, nil)
	assert.Error(t, err)
}

func TestOrderReference(t *testing.T) {
	item, err := NewOrderItem(uuid.New(), "Honey", decimal.NewFromInt(1), 1)
	require.NoError(t, err)
	o, err := NewOrder(uuid.New(), []OrderItem{item})
	require.NoError(t, err)

	ref := o.Reference("alice")
	assert.Equal(t, "alice-"+o.ID.String(), ref)
}
