package memory

import (
	"sort"
	"sync"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type wishlistRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.WishlistItem
}

// NewWishlistRepository возвращает in-memory репозиторий wishlist.
func NewWishlistRepository() domain.WishlistRepository {
	return &wishlistRepositoryInMemory{
		items: make(map[string]domain.WishlistItem),
	}
}

func (r *wishlistRepositoryInMemory) Add(item domain.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.UserID == item.UserID && existing.GameID == item.GameID {
			return domain.ErrAlreadyInWishlist
		}
	}
	r.items[item.ID] = item
	return nil
}

func (r *wishlistRepositoryInMemory) Get(id string) (domain.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return domain.WishlistItem{}, domain.ErrWishlistItemNotFound
	}
	return item, nil
}

func (r *wishlistRepositoryInMemory) ListByUser(userID string) ([]domain.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.WishlistItem, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *wishlistRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrWishlistItemNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.WishlistRepository = (*wishlistRepositoryInMemory)(nil)
