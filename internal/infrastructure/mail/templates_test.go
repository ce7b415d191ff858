package mail

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftbasket/backend/internal/domain/order"
)

func TestInvoiceBody(t *testing.T) {
	item, err := order.NewOrderItem(uuid.New(), "Honey", decimal.NewFromFloat(12.50), 2)
	require.NoError(t, err)
	o, err := order.NewOrder(uuid.New(), []order.OrderItem{item})
	require.NoError(t, err)

	body := InvoiceBody("alice", o)

	assert.Contains(t, body, "Hi alice,")
	assert.Contains(t, body, "2 x Honey  R 25.00")
	assert.Contains(t, body, "Total due: R 25.00")
	assert.Contains(t, body, "Reference: alice-"+o.ID.String())
	assert.Contains(t, body, "SwiftBasket")
}

func TestResetBody(t *testing.T) {
	link := "https://shop.example/reset?token=abc"
	body := ResetBody("bob", link, 5*time.Minute)

	assert.Contains(t, body, "Hi bob,")
	assert.Contains(t, body, link)
	assert.Contains(t, body, "within 5 minutes")
}
