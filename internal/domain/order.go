package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает жизненный цикл заказа витрины.
type OrderStatus string

const (
	// OrderStatusDelivered — начальный статус: заказ собран из корзины и ждёт оплату.
	OrderStatusDelivered OrderStatus = "DELIVERED"
	// OrderStatusProcessing — оплата подтверждена, заказ в обработке.
	OrderStatusProcessing OrderStatus = "PROCESSING"
	// OrderStatusShipped — заказ передан покупателю (ключи/доставка отправлены).
	OrderStatusShipped OrderStatus = "SHIPPED"
	// OrderStatusCompleted — заказ закрыт.
	OrderStatusCompleted OrderStatus = "COMPLETED"
	// OrderStatusCancelled — заказ отменён до завершения цикла.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusDelivered, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal сообщает, является ли статус конечным.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// orderTransitions — таблица допустимых переходов статуса. Прямое присваивание
// статуса в обход таблицы запрещено, включая административные обновления.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusDelivered:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusCompleted},
}

// CanTransitionTo проверяет допустимость перехода по таблице.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem — одна позиция заказа. Цена фиксируется в момент чекаута:
// последующие изменения каталога не переписывают историю покупок.
type OrderItem struct {
	ID        string
	OrderID   string
	GameID    string
	Title     string
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}

// Order агрегирует заказ и его позиции. Позиции после создания неизменяемы;
// администратор может менять только статус (через таблицу переходов) и заметки.
type Order struct {
	ID          string
	UserID      string
	TotalAmount decimal.Decimal
	// DiscountedAmount — итог со скидкой. nil означает "скидка не применялась".
	DiscountedAmount *decimal.Decimal
	Status           OrderStatus
	Notes            string
	Items            []OrderItem
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PayableAmount возвращает сумму к оплате: итог со скидкой, если она была,
// иначе полную сумму заказа.
func (o *Order) PayableAmount() decimal.Decimal {
	if o.DiscountedAmount != nil {
		return *o.DiscountedAmount
	}
	return o.TotalAmount
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.UserID == "" {
		errs = append(errs, ErrUserIDRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrOrderItemsRequired)
	}
	if o.TotalAmount.IsNegative() {
		errs = append(errs, ErrOrderAmountNegative)
	}

	// Сверяем сумму заказа с суммой зафиксированных цен позиций.
	calc := decimal.Zero
	for _, item := range o.Items {
		if item.UnitPrice.IsNegative() {
			errs = append(errs, ErrPriceNegative)
		}
		calc = calc.Add(item.UnitPrice)
	}
	if len(o.Items) > 0 && !calc.Equal(o.TotalAmount) {
		errs = append(errs, ErrOrderAmountMismatch)
	}

	return errs
}

// StatusChange — запись истории переходов статуса заказа.
type StatusChange struct {
	OrderID  string
	From     OrderStatus
	To       OrderStatus
	Reason   string
	Occurred time.Time
}
