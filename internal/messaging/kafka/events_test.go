package kafka

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gamestorelab/gamestore/internal/domain"
)

func TestNewOrderCreatedEvent(t *testing.T) {
	discounted := decimal.RequireFromString("90")
	order := domain.Order{
		ID:               "order-1",
		UserID:           "user-1",
		TotalAmount:      decimal.RequireFromString("100"),
		DiscountedAmount: &discounted,
		Status:           domain.OrderStatusDelivered,
		Items:            []domain.OrderItem{{GameID: "game-a"}, {GameID: "game-b"}},
	}

	event := NewOrderCreatedEvent(order)
	assert.Equal(t, EventTypeOrderCreated, event.EventType)
	assert.Equal(t, "order-1", event.OrderID)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, "100", event.TotalAmount)
	assert.Equal(t, "90", event.DiscountedAmount)
	assert.Equal(t, 2, event.Items)
	assert.False(t, event.Timestamp.IsZero())
}

func TestNewOrderCreatedEventWithoutDiscount(t *testing.T) {
	event := NewOrderCreatedEvent(domain.Order{
		ID:          "order-1",
		TotalAmount: decimal.RequireFromString("50"),
	})
	assert.Empty(t, event.DiscountedAmount)
}

func TestNewOrderPaidEvent(t *testing.T) {
	order := domain.Order{ID: "order-1", UserID: "user-1", Status: domain.OrderStatusProcessing}
	payment := domain.Payment{ID: "payment-1", Amount: decimal.RequireFromString("90")}

	event := NewOrderPaidEvent(order, payment)
	assert.Equal(t, EventTypeOrderPaid, event.EventType)
	assert.Equal(t, "payment-1", event.PaymentID)
	assert.Equal(t, "90", event.TotalAmount)
	assert.Equal(t, string(domain.OrderStatusProcessing), event.Status)
}

func TestNewOrderStatusChangedEvent(t *testing.T) {
	occurred := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	change := domain.StatusChange{
		OrderID:  "order-1",
		From:     domain.OrderStatusProcessing,
		To:       domain.OrderStatusShipped,
		Reason:   "left warehouse",
		Occurred: occurred,
	}

	event := NewOrderStatusChangedEvent(change)
	assert.Equal(t, EventTypeOrderStatusChanged, event.EventType)
	assert.Equal(t, string(domain.OrderStatusShipped), event.Status)
	assert.Equal(t, string(domain.OrderStatusProcessing), event.PreviousStatus)
	assert.Equal(t, "left warehouse", event.Reason)
	assert.Equal(t, occurred, event.Timestamp)
}
