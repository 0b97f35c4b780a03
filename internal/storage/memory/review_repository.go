package memory

import (
	"sort"
	"sync"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type reviewRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Review
}

// NewReviewRepository возвращает in-memory репозиторий отзывов.
func NewReviewRepository() domain.ReviewRepository {
	return &reviewRepositoryInMemory{
		items: make(map[string]domain.Review),
	}
}

func (r *reviewRepositoryInMemory) Create(review domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.UserID == review.UserID && existing.GameID == review.GameID {
			return domain.ErrDuplicateReview
		}
	}
	r.items[review.ID] = review
	return nil
}

func (r *reviewRepositoryInMemory) Get(id string) (domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.items[id]
	if !ok {
		return domain.Review{}, domain.ErrReviewNotFound
	}
	return review, nil
}

func (r *reviewRepositoryInMemory) List(filter domain.ReviewFilter) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Review, 0, len(r.items))
	for _, review := range r.items {
		if filter.GameID != "" && review.GameID != filter.GameID {
			continue
		}
		if filter.UserID != "" && review.UserID != filter.UserID {
			continue
		}
		if filter.Rating > 0 && review.Rating != filter.Rating {
			continue
		}
		result = append(result, review)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *reviewRepositoryInMemory) Update(review domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[review.ID]; !ok {
		return domain.ErrReviewNotFound
	}
	r.items[review.ID] = review
	return nil
}

func (r *reviewRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.ReviewRepository = (*reviewRepositoryInMemory)(nil)
