package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLineItem(t *testing.T, item string, qty, price int) LineItem {
	t.Helper()
	li, err := NewLineItem(item, qty, price)
	require.NoError(t, err)
	return li
}

func TestOrderTotalEmpty(t *testing.T) {
	o := NewOrder(Customer{ID: 1})
	assert.Equal(t, 0, o.TotalCents())
	assert.Equal(t, StatusOpen, o.Status())
	assert.Empty(t, o.ID)
}

func TestOrderTotalSumsLineItems(t *testing.T) {
	o := NewOrder(Customer{ID: 12345, Name: "Craig"})
	o.AddLineItem(mustLineItem(t, "Keyboard", 1, 5000))
	o.AddLineItem(mustLineItem(t, "SSD", 1, 15000))
	o.AddLineItem(mustLineItem(t, "USB 3 Cable", 3, 500))

	assert.Equal(t, 21500, o.TotalCents())
	assert.Len(t, o.LineItems(), 3)
}

func TestOrderTotalRecomputesAfterAppend(t *testing.T) {
	o := NewOrder(Customer{})
	o.AddLineItem(mustLineItem(t, "SSD", 1, 15000))
	assert.Equal(t, 15000, o.TotalCents())
	o.AddLineItem(mustLineItem(t, "Keyboard", 2, 5000))
	assert.Equal(t, 25000, o.TotalCents())
}

func TestOrderStatusTransitions(t *testing.T) {
	t.Run("open to paid", func(t *testing.T) {
		o := NewOrder(Customer{})
		require.NoError(t, o.SetStatus(StatusPaid))
		assert.Equal(t, StatusPaid, o.Status())
	})
	t.Run("open to canceled", func(t *testing.T) {
		o := NewOrder(Customer{})
		require.NoError(t, o.SetStatus(StatusCanceled))
	})
	t.Run("paid to delivered", func(t *testing.T) {
		o := NewOrder(Customer{})
		require.NoError(t, o.SetStatus(StatusPaid))
		require.NoError(t, o.SetStatus(StatusDelivered))
	})
	t.Run("paid to returned", func(t *testing.T) {
		o := NewOrder(Customer{})
		require.NoError(t, o.SetStatus(StatusPaid))
		require.NoError(t, o.SetStatus(StatusReturned))
	})
	t.Run("open to delivered rejected", func(t *testing.T) {
		o := NewOrder(Customer{})
		err := o.SetStatus(StatusDelivered)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, StatusOpen, o.Status())
	})
	t.Run("canceled is terminal", func(t *testing.T) {
		o := NewOrder(Customer{})
		require.NoError(t, o.SetStatus(StatusCanceled))
		assert.ErrorIs(t, o.SetStatus(StatusOpen), ErrInvalidTransition)
		assert.ErrorIs(t, o.SetStatus(StatusPaid), ErrInvalidTransition)
	})
}

func TestOrderLineItemsReturnsCopy(t *testing.T) {
	o := NewOrder(Customer{})
	o.AddLineItem(mustLineItem(t, "Keyboard", 1, 5000))
	items := o.LineItems()
	items[0].UnitPriceCents = 1
	assert.Equal(t, 5000, o.TotalCents())
}
