package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod описывает способ оплаты.
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodPaypal       PaymentMethod = "PAYPAL"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodEWallet      PaymentMethod = "E_WALLET"
)

// Valid проверяет, что способ оплаты поддерживается.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodPaypal, PaymentMethodBankTransfer, PaymentMethodEWallet:
		return true
	default:
		return false
	}
}

// PaymentStatus описывает состояние платежа, сообщённое платёжным провайдером.
type PaymentStatus string

const (
	// PaymentStatusPending — платёж зарегистрирован, подтверждение не пришло.
	PaymentStatusPending PaymentStatus = "PENDING"
	// PaymentStatusCompleted — провайдер подтвердил списание.
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	// PaymentStatusFailed — провайдер отклонил платёж.
	PaymentStatusFailed PaymentStatus = "FAILED"
	// PaymentStatusRefunded — деньги возвращены покупателю.
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Valid проверяет, что статус платежа относится к поддерживаемым значениям.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// Payment — платёж по заказу. Сумма обязана совпадать с суммой к оплате заказа
// с точностью до целой денежной единицы (обе стороны округляются вниз).
type Payment struct {
	ID            string
	OrderID       string
	Method        PaymentMethod
	Amount        decimal.Decimal
	TransactionID string
	Status        PaymentStatus
	PaymentDate   *time.Time
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate проверяет корректность полей платежа и возвращает ошибки, если они есть.
func (p *Payment) Validate() []error {
	var errs []error

	if p.OrderID == "" {
		errs = append(errs, ErrOrderIDRequired)
	}
	if !p.Method.Valid() {
		errs = append(errs, ErrPaymentMethodInvalid)
	}
	if p.Amount.IsNegative() {
		errs = append(errs, ErrPaymentAmountNegative)
	}

	return errs
}
