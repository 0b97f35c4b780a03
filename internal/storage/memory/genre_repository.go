package memory

import (
	"sort"
	"sync"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type genreRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Genre
}

// NewGenreRepository возвращает in-memory репозиторий жанров.
func NewGenreRepository() domain.GenreRepository {
	return &genreRepositoryInMemory{
		items: make(map[string]domain.Genre),
	}
}

func (r *genreRepositoryInMemory) Create(genre domain.Genre) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Name == genre.Name {
			return domain.ErrDuplicateGenreName
		}
	}
	r.items[genre.ID] = genre
	return nil
}

func (r *genreRepositoryInMemory) Get(id string) (domain.Genre, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	genre, ok := r.items[id]
	if !ok {
		return domain.Genre{}, domain.ErrGenreNotFound
	}
	return genre, nil
}

func (r *genreRepositoryInMemory) List() ([]domain.Genre, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Genre, 0, len(r.items))
	for _, genre := range r.items {
		result = append(result, genre)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *genreRepositoryInMemory) Update(genre domain.Genre) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[genre.ID]; !ok {
		return domain.ErrGenreNotFound
	}
	for id, existing := range r.items {
		if id != genre.ID && existing.Name == genre.Name {
			return domain.ErrDuplicateGenreName
		}
	}
	r.items[genre.ID] = genre
	return nil
}

func (r *genreRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrGenreNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.GenreRepository = (*genreRepositoryInMemory)(nil)
