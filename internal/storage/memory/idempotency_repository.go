package memory

import (
	"sync"
	"time"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type idempotencyRepositoryInMemory struct {
	mu    sync.Mutex
	items map[string]domain.IdempotencyRecord
}

// NewIdempotencyRepository возвращает in-memory хранилище idempotency-ключей.
func NewIdempotencyRepository() domain.IdempotencyRepository {
	return &idempotencyRepositoryInMemory{
		items: make(map[string]domain.IdempotencyRecord),
	}
}

func (r *idempotencyRepositoryInMemory) CreateProcessing(key, requestHash string, ttlAt time.Time) (domain.IdempotencyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := r.items[key]; ok {
		// Занятый ключ не трогаем; failed- и протухшие записи перезаписываются.
		if existing.Status != domain.IdempotencyStatusFailed && !existing.Expired(now) {
			return domain.IdempotencyRecord{}, domain.ErrCheckoutInFlight
		}
	}

	record := domain.IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		Status:      domain.IdempotencyStatusProcessing,
		TTLAt:       ttlAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.items[key] = record
	return record, nil
}

func (r *idempotencyRepositoryInMemory) Get(key string) (domain.IdempotencyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.items[key]
	if !ok {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyNotFound
	}
	return record, nil
}

func (r *idempotencyRepositoryInMemory) MarkDone(key, orderID string) error {
	return r.markStatus(key, domain.IdempotencyStatusDone, orderID)
}

func (r *idempotencyRepositoryInMemory) MarkFailed(key string) error {
	return r.markStatus(key, domain.IdempotencyStatusFailed, "")
}

func (r *idempotencyRepositoryInMemory) markStatus(key string, status domain.IdempotencyStatus, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.items[key]
	if !ok {
		return domain.ErrIdempotencyKeyNotFound
	}
	record.Status = status
	record.OrderID = orderID
	record.UpdatedAt = time.Now().UTC()
	r.items[key] = record
	return nil
}

func (r *idempotencyRepositoryInMemory) DeleteExpired(before time.Time, limit int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for key, record := range r.items {
		if limit > 0 && deleted >= limit {
			break
		}
		if record.TTLAt.Before(before) {
			delete(r.items, key)
			deleted++
		}
	}
	return deleted, nil
}

var _ domain.IdempotencyRepository = (*idempotencyRepositoryInMemory)(nil)
