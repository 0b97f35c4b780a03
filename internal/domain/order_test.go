package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to OrderStatus
	}{
		{OrderStatusDelivered, OrderStatusProcessing},
		{OrderStatusDelivered, OrderStatusCancelled},
		{OrderStatusProcessing, OrderStatusShipped},
		{OrderStatusProcessing, OrderStatusCancelled},
		{OrderStatusShipped, OrderStatusCompleted},
	}
	for _, tr := range allowed {
		assert.True(t, tr.from.CanTransitionTo(tr.to), "%s -> %s must be allowed", tr.from, tr.to)
	}

	denied := []struct {
		from, to OrderStatus
	}{
		{OrderStatusDelivered, OrderStatusShipped},
		{OrderStatusDelivered, OrderStatusCompleted},
		{OrderStatusProcessing, OrderStatusDelivered},
		{OrderStatusShipped, OrderStatusCancelled},
		{OrderStatusCompleted, OrderStatusCancelled},
		{OrderStatusCancelled, OrderStatusDelivered},
	}
	for _, tr := range denied {
		assert.False(t, tr.from.CanTransitionTo(tr.to), "%s -> %s must be denied", tr.from, tr.to)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusDelivered.Terminal())
	assert.False(t, OrderStatusProcessing.Terminal())
}

func TestOrderPayableAmount(t *testing.T) {
	order := Order{TotalAmount: dec("100")}
	assert.True(t, order.PayableAmount().Equal(dec("100")))

	discounted := dec("90")
	order.DiscountedAmount = &discounted
	assert.True(t, order.PayableAmount().Equal(dec("90")))
}

func TestOrderValidateInvariants(t *testing.T) {
	order := Order{
		UserID:      "user-1",
		TotalAmount: dec("50"),
		Items: []OrderItem{
			{GameID: "a", UnitPrice: dec("20")},
			{GameID: "b", UnitPrice: dec("30")},
		},
	}
	assert.Empty(t, order.ValidateInvariants())

	mismatch := order
	mismatch.TotalAmount = dec("60")
	assert.Contains(t, mismatch.ValidateInvariants(), ErrOrderAmountMismatch)

	empty := Order{UserID: "user-1", TotalAmount: dec("0")}
	assert.Contains(t, empty.ValidateInvariants(), ErrOrderItemsRequired)
}
