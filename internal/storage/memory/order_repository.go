package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
// Заказы сюда попадают только через checkout-репозиторий.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]domain.Order),
	}
}

func (r *orderRepositoryInMemory) Get(id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *orderRepositoryInMemory) List(limit int) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		result = append(result, order)
	}
	return sortAndLimitOrders(result, limit), nil
}

func (r *orderRepositoryInMemory) ListByUser(userID string, limit int) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		if order.UserID != userID {
			continue
		}
		result = append(result, order)
	}
	return sortAndLimitOrders(result, limit), nil
}

func (r *orderRepositoryInMemory) UpdateStatusNotes(id string, status domain.OrderStatus, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.items[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Status = status
	order.Notes = notes
	order.UpdatedAt = time.Now().UTC()
	r.items[id] = order
	return nil
}

func (r *orderRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.items, id)
	return nil
}

// put сохраняет заказ, созданный checkout-репозиторием.
func (r *orderRepositoryInMemory) put(order domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[order.ID] = order
}

func sortAndLimitOrders(orders []domain.Order, limit int) []domain.Order {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
