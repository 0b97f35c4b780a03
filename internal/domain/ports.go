package domain

// EventPublisher публикует события витрины во внешнюю шину. Вызывается только
// после успешного коммита; ошибка публикации не откатывает заказ (best-effort).
type EventPublisher interface {
	// OrderCreated сообщает о созданном заказе (нотификация покупателя).
	OrderCreated(order Order) error
	// OrderPaid сообщает о подтверждённой оплате заказа.
	OrderPaid(order Order, payment Payment) error
	// OrderStatusChanged сообщает о переходе статуса заказа.
	OrderStatusChanged(change StatusChange) error
}
