package memory

import (
	"errors"
	"sort"
	"sync"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type paymentRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Payment

	orders domain.OrderRepository
}

// NewPaymentRepository возвращает in-memory репозиторий платежей.
// Репозиторий заказов нужен для выборки платежей по пользователю.
func NewPaymentRepository(orders domain.OrderRepository) domain.PaymentRepository {
	return &paymentRepositoryInMemory{
		items:  make(map[string]domain.Payment),
		orders: orders,
	}
}

func (r *paymentRepositoryInMemory) Create(payment domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[payment.ID] = payment
	return nil
}

func (r *paymentRepositoryInMemory) Get(id string) (domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.items[id]
	if !ok {
		return domain.Payment{}, domain.ErrPaymentNotFound
	}
	return payment, nil
}

func (r *paymentRepositoryInMemory) List(limit int) ([]domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Payment, 0, len(r.items))
	for _, payment := range r.items {
		result = append(result, payment)
	}
	return sortAndLimitPayments(result, limit), nil
}

func (r *paymentRepositoryInMemory) ListByUser(userID string) ([]domain.Payment, error) {
	r.mu.RLock()
	payments := make([]domain.Payment, 0, len(r.items))
	for _, payment := range r.items {
		payments = append(payments, payment)
	}
	r.mu.RUnlock()

	result := make([]domain.Payment, 0)
	for _, payment := range payments {
		order, err := r.orders.Get(payment.OrderID)
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				continue
			}
			return nil, err
		}
		if order.UserID == userID {
			result = append(result, payment)
		}
	}
	return sortAndLimitPayments(result, 0), nil
}

func (r *paymentRepositoryInMemory) Update(payment domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[payment.ID]; !ok {
		return domain.ErrPaymentNotFound
	}
	r.items[payment.ID] = payment
	return nil
}

func (r *paymentRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrPaymentNotFound
	}
	delete(r.items, id)
	return nil
}

func sortAndLimitPayments(payments []domain.Payment, limit int) []domain.Payment {
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].CreatedAt.Equal(payments[j].CreatedAt) {
			return payments[i].CreatedAt.After(payments[j].CreatedAt)
		}
		return payments[i].ID > payments[j].ID
	})
	if limit > 0 && len(payments) > limit {
		payments = payments[:limit]
	}
	return payments
}

var _ domain.PaymentRepository = (*paymentRepositoryInMemory)(nil)
