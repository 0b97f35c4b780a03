package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType описывает способ расчёта скидки промоакции.
type DiscountType string

const (
	// DiscountTypePercentage — скидка в процентах от суммы заказа.
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	// DiscountTypeFixedAmount — скидка на фиксированную сумму.
	DiscountTypeFixedAmount DiscountType = "FIXED_AMOUNT"
)

// Valid проверяет, что тип скидки поддерживается.
func (t DiscountType) Valid() bool {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixedAmount:
		return true
	default:
		return false
	}
}

// PromotionStatus — классификация промокода для витринного запроса checkCode.
// Это read-only ответ для UI, не путать с enforcement-проверкой в чекауте.
type PromotionStatus string

const (
	PromotionStatusActive     PromotionStatus = "ACTIVE"
	PromotionStatusInactive   PromotionStatus = "INACTIVE"
	PromotionStatusNotStarted PromotionStatus = "NOT_STARTED"
	PromotionStatusExpired    PromotionStatus = "EXPIRED"
)

// Promotion — промоакция, идентифицируемая уникальным кодом.
// Промокод применим, только если он активен, текущий момент попадает в окно
// [start_date, end_date] и сумма заказа не меньше minimum_order.
type Promotion struct {
	ID            string
	Code          string
	Description   string
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	MinimumOrder  *decimal.Decimal
	StartDate     *time.Time
	EndDate       *time.Time
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate проверяет инварианты промоакции.
func (p *Promotion) Validate() []error {
	var errs []error

	if p.Code == "" {
		errs = append(errs, ErrPromotionCodeRequired)
	}
	if !p.DiscountType.Valid() {
		errs = append(errs, ErrDiscountTypeInvalid)
	}
	if !p.DiscountValue.IsPositive() {
		errs = append(errs, ErrDiscountValueInvalid)
	}
	if p.DiscountType == DiscountTypePercentage && p.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		errs = append(errs, ErrPercentageTooLarge)
	}
	if p.StartDate != nil && p.EndDate != nil && p.StartDate.After(*p.EndDate) {
		errs = append(errs, ErrPromotionWindowInverted)
	}

	return errs
}

// StatusAt классифицирует промокод на момент now. Порядок проверок совпадает
// с enforcement-путём: сначала флаг активности, потом окно действия.
func (p *Promotion) StatusAt(now time.Time) PromotionStatus {
	switch {
	case !p.IsActive:
		return PromotionStatusInactive
	case p.StartDate != nil && now.Before(*p.StartDate):
		return PromotionStatusNotStarted
	case p.EndDate != nil && now.After(*p.EndDate):
		return PromotionStatusExpired
	default:
		return PromotionStatusActive
	}
}

// EnsureUsableAt возвращает ошибку enforcement-пути для неприменимого промокода.
// Проверка минимальной суммы сюда не входит: она выполняется позже, когда
// известен фактический subtotal.
func (p *Promotion) EnsureUsableAt(now time.Time) error {
	switch p.StatusAt(now) {
	case PromotionStatusInactive:
		return ErrPromotionInactive
	case PromotionStatusNotStarted:
		return ErrPromotionNotStarted
	case PromotionStatusExpired:
		return ErrPromotionExpired
	default:
		return nil
	}
}

// Terms возвращает условия скидки для калькулятора.
func (p *Promotion) Terms() DiscountTerms {
	return DiscountTerms{
		Type:         p.DiscountType,
		Value:        p.DiscountValue,
		MinimumOrder: p.MinimumOrder,
	}
}

// DiscountTerms — условия скидки, снятые с провалидированного промокода.
type DiscountTerms struct {
	Type         DiscountType
	Value        decimal.Decimal
	MinimumOrder *decimal.Decimal
}

// Apply считает итог со скидкой по subtotal. Возвращает ErrBelowMinimumOrder,
// если сумма не добирает до минимального порога промокода.
func (t DiscountTerms) Apply(subtotal decimal.Decimal) (decimal.Decimal, error) {
	if t.MinimumOrder != nil && subtotal.LessThan(*t.MinimumOrder) {
		return decimal.Decimal{}, ErrBelowMinimumOrder
	}

	switch t.Type {
	case DiscountTypePercentage:
		return PercentOff(subtotal, t.Value), nil
	case DiscountTypeFixedAmount:
		return FixedOff(subtotal, t.Value), nil
	default:
		return subtotal, nil
	}
}
