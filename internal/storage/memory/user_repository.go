// Package memory содержит in-memory реализации репозиториев для локальной
// разработки и unit-тестов сервисов.
package memory

import (
	"sort"
	"sync"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type userRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.User
}

// NewUserRepository возвращает in-memory репозиторий пользователей.
func NewUserRepository() domain.UserRepository {
	return &userRepositoryInMemory{
		items: make(map[string]domain.User),
	}
}

func (r *userRepositoryInMemory) Create(user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
	}
	r.items[user.ID] = user
	return nil
}

func (r *userRepositoryInMemory) Get(id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.items[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *userRepositoryInMemory) List(limit, offset int) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.User, 0, len(r.items))
	for _, user := range r.items {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	if offset >= len(result) {
		return []domain.User{}, nil
	}
	result = result[offset:]
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *userRepositoryInMemory) Update(user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, existing := range r.items {
		if id != user.ID && existing.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
	}
	r.items[user.ID] = user
	return nil
}

func (r *userRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.UserRepository = (*userRepositoryInMemory)(nil)
