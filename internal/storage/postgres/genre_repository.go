package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type genreRepository struct {
	db *sql.DB
}

// NewGenreRepository создаёт PostgreSQL-реализацию GenreRepository.
func NewGenreRepository(store *Store) domain.GenreRepository {
	return &genreRepository{db: store.DB()}
}

func (r *genreRepository) Create(genre domain.Genre) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO genres (id, name, description) VALUES ($1, $2, $3)
	`, genre.ID, genre.Name, genre.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateGenreName
		}
		return fmt.Errorf("insert genre: %w", err)
	}

	return nil
}

func (r *genreRepository) Get(id string) (domain.Genre, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var genre domain.Genre
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description FROM genres WHERE id = $1
	`, id).Scan(&genre.ID, &genre.Name, &genre.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Genre{}, domain.ErrGenreNotFound
		}
		return domain.Genre{}, fmt.Errorf("select genre: %w", err)
	}

	return genre, nil
}

func (r *genreRepository) List() ([]domain.Genre, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description FROM genres ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	genres := make([]domain.Genre, 0)
	for rows.Next() {
		var genre domain.Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Description); err != nil {
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return genres, nil
}

func (r *genreRepository) Update(genre domain.Genre) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE genres SET name = $1, description = $2 WHERE id = $3
	`, genre.Name, genre.Description, genre.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateGenreName
		}
		return fmt.Errorf("update genre: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrGenreNotFound
	}

	return nil
}

func (r *genreRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrGenreNotFound
	}

	return nil
}

var _ domain.GenreRepository = (*genreRepository)(nil)
