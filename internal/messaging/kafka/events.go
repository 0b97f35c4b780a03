package kafka

import (
	"time"

	"github.com/gamestorelab/gamestore/internal/domain"
)

// EventType определяет тип события витрины.
type EventType string

const (
	// EventTypeOrderCreated — заказ собран из корзины (нотификация покупателя).
	EventTypeOrderCreated EventType = "order.created"
	// EventTypeOrderPaid — оплата заказа подтверждена.
	EventTypeOrderPaid EventType = "order.paid"
	// EventTypeOrderStatusChanged — статус заказа сменился.
	EventTypeOrderStatusChanged EventType = "order.status_changed"
)

// Topics для Kafka
const (
	TopicOrderEvents = "gamestore.order.events"
)

// OrderEvent представляет событие заказа для внешних потребителей
// (нотификации, аналитика). Суммы сериализуются строками, чтобы не терять
// точность десятичных значений.
type OrderEvent struct {
	EventType        EventType `json:"event_type"`
	OrderID          string    `json:"order_id"`
	UserID           string    `json:"user_id"`
	Status           string    `json:"status"`
	TotalAmount      string    `json:"total_amount,omitempty"`
	DiscountedAmount string    `json:"discounted_amount,omitempty"`
	Items            int       `json:"items,omitempty"`
	PaymentID        string    `json:"payment_id,omitempty"`
	PreviousStatus   string    `json:"previous_status,omitempty"`
	Reason           string    `json:"reason,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// NewOrderCreatedEvent собирает событие о созданном заказе.
func NewOrderCreatedEvent(order domain.Order) OrderEvent {
	event := OrderEvent{
		EventType:   EventTypeOrderCreated,
		OrderID:     order.ID,
		UserID:      order.UserID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount.String(),
		Items:       len(order.Items),
		Timestamp:   time.Now().UTC(),
	}
	if order.DiscountedAmount != nil {
		event.DiscountedAmount = order.DiscountedAmount.String()
	}
	return event
}

// NewOrderPaidEvent собирает событие о подтверждённой оплате.
func NewOrderPaidEvent(order domain.Order, payment domain.Payment) OrderEvent {
	return OrderEvent{
		EventType:   EventTypeOrderPaid,
		OrderID:     order.ID,
		UserID:      order.UserID,
		Status:      string(order.Status),
		TotalAmount: payment.Amount.String(),
		PaymentID:   payment.ID,
		Timestamp:   time.Now().UTC(),
	}
}

// NewOrderStatusChangedEvent собирает событие о переходе статуса.
func NewOrderStatusChangedEvent(change domain.StatusChange) OrderEvent {
	return OrderEvent{
		EventType:      EventTypeOrderStatusChanged,
		OrderID:        change.OrderID,
		Status:         string(change.To),
		PreviousStatus: string(change.From),
		Reason:         change.Reason,
		Timestamp:      change.Occurred,
	}
}
