package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type gameRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Game
}

// NewGameRepository возвращает in-memory репозиторий каталога.
func NewGameRepository() domain.GameRepository {
	return &gameRepositoryInMemory{
		items: make(map[string]domain.Game),
	}
}

func (r *gameRepositoryInMemory) Create(game domain.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[game.ID] = game
	return nil
}

func (r *gameRepositoryInMemory) Get(id string) (domain.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.items[id]
	if !ok {
		return domain.Game{}, domain.ErrGameNotFound
	}
	return game, nil
}

func (r *gameRepositoryInMemory) List(filter domain.GameFilter) ([]domain.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Game, 0, len(r.items))
	for _, game := range r.items {
		if filter.HotOnly && !game.IsHot {
			continue
		}
		if filter.TitleQuery != "" &&
			!strings.Contains(strings.ToLower(game.Title), strings.ToLower(filter.TitleQuery)) {
			continue
		}
		result = append(result, game)
	}

	if filter.ByLatestUpdate {
		sort.Slice(result, func(i, j int) bool {
			if !result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
				return result[i].UpdatedAt.After(result[j].UpdatedAt)
			}
			return result[i].ID > result[j].ID
		})
	} else {
		sort.Slice(result, func(i, j int) bool {
			if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
				return result[i].CreatedAt.Before(result[j].CreatedAt)
			}
			return result[i].ID < result[j].ID
		})
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []domain.Game{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *gameRepositoryInMemory) Update(game domain.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[game.ID]; !ok {
		return domain.ErrGameNotFound
	}
	r.items[game.ID] = game
	return nil
}

func (r *gameRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrGameNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.GameRepository = (*gameRepositoryInMemory)(nil)
