package memory

import (
	"sync"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type orderHistoryRepositoryInMemory struct {
	mu      sync.RWMutex
	changes map[string][]domain.StatusChange
}

// NewOrderHistoryRepository возвращает in-memory историю статусов заказов.
func NewOrderHistoryRepository() domain.OrderHistoryRepository {
	return &orderHistoryRepositoryInMemory{
		changes: make(map[string][]domain.StatusChange),
	}
}

func (r *orderHistoryRepositoryInMemory) Append(change domain.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.changes[change.OrderID] = append(r.changes[change.OrderID], change)
	return nil
}

func (r *orderHistoryRepositoryInMemory) List(orderID string) ([]domain.StatusChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	changes := r.changes[orderID]
	result := make([]domain.StatusChange, len(changes))
	copy(result, changes)
	return result, nil
}

var _ domain.OrderHistoryRepository = (*orderHistoryRepositoryInMemory)(nil)
