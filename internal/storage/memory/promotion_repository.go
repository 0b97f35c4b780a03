package memory

import (
	"sort"
	"sync"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type promotionRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Promotion
}

// NewPromotionRepository возвращает in-memory репозиторий промоакций.
func NewPromotionRepository() domain.PromotionRepository {
	return &promotionRepositoryInMemory{
		items: make(map[string]domain.Promotion),
	}
}

func (r *promotionRepositoryInMemory) Create(promotion domain.Promotion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Code == promotion.Code {
			return domain.ErrDuplicatePromotionCode
		}
	}
	r.items[promotion.ID] = promotion
	return nil
}

func (r *promotionRepositoryInMemory) Get(id string) (domain.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	promotion, ok := r.items[id]
	if !ok {
		return domain.Promotion{}, domain.ErrPromotionNotFound
	}
	return promotion, nil
}

func (r *promotionRepositoryInMemory) GetByCode(code string) (domain.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, promotion := range r.items {
		if promotion.Code == code {
			return promotion, nil
		}
	}
	return domain.Promotion{}, domain.ErrPromotionNotFound
}

func (r *promotionRepositoryInMemory) List() ([]domain.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Promotion, 0, len(r.items))
	for _, promotion := range r.items {
		result = append(result, promotion)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *promotionRepositoryInMemory) Update(promotion domain.Promotion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[promotion.ID]; !ok {
		return domain.ErrPromotionNotFound
	}
	for id, existing := range r.items {
		if id != promotion.ID && existing.Code == promotion.Code {
			return domain.ErrDuplicatePromotionCode
		}
	}
	r.items[promotion.ID] = promotion
	return nil
}

func (r *promotionRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrPromotionNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.PromotionRepository = (*promotionRepositoryInMemory)(nil)
