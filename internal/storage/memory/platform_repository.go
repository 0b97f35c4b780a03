package memory

import (
	"sort"
	"sync"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type platformRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Platform
}

// NewPlatformRepository возвращает in-memory репозиторий платформ.
func NewPlatformRepository() domain.PlatformRepository {
	return &platformRepositoryInMemory{
		items: make(map[string]domain.Platform),
	}
}

func (r *platformRepositoryInMemory) Create(platform domain.Platform) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Name == platform.Name {
			return domain.ErrDuplicatePlatformName
		}
	}
	r.items[platform.ID] = platform
	return nil
}

func (r *platformRepositoryInMemory) Get(id string) (domain.Platform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	platform, ok := r.items[id]
	if !ok {
		return domain.Platform{}, domain.ErrPlatformNotFound
	}
	return platform, nil
}

func (r *platformRepositoryInMemory) List() ([]domain.Platform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Platform, 0, len(r.items))
	for _, platform := range r.items {
		result = append(result, platform)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *platformRepositoryInMemory) Update(platform domain.Platform) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[platform.ID]; !ok {
		return domain.ErrPlatformNotFound
	}
	for id, existing := range r.items {
		if id != platform.ID && existing.Name == platform.Name {
			return domain.ErrDuplicatePlatformName
		}
	}
	r.items[platform.ID] = platform
	return nil
}

func (r *platformRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrPlatformNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.PlatformRepository = (*platformRepositoryInMemory)(nil)
