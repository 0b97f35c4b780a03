package domain

import "time"

// IdempotencyStatus описывает жизненный цикл idempotency-ключа чекаута.
type IdempotencyStatus string

const (
	// IdempotencyStatusProcessing означает, что чекаут принят и ещё выполняется.
	IdempotencyStatusProcessing IdempotencyStatus = "processing"
	// IdempotencyStatusDone означает, что чекаут завершён и заказ создан.
	IdempotencyStatusDone IdempotencyStatus = "done"
	// IdempotencyStatusFailed означает, что чекаут завершился ошибкой.
	IdempotencyStatusFailed IdempotencyStatus = "failed"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s IdempotencyStatus) Valid() bool {
	switch s {
	case IdempotencyStatusProcessing, IdempotencyStatusDone, IdempotencyStatusFailed:
		return true
	default:
		return false
	}
}

// IdempotencyRecord хранит исход чекаута по idempotency-ключу: повторный запрос
// с тем же ключом возвращает уже созданный заказ вместо создания второго.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	// OrderID заполняется при успешном чекауте.
	OrderID   string
	Status    IdempotencyStatus
	TTLAt     time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired сообщает, истёк ли срок хранения записи на момент now.
func (r IdempotencyRecord) Expired(now time.Time) bool {
	return !r.TTLAt.IsZero() && r.TTLAt.Before(now)
}
