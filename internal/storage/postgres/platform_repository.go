package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type platformRepository struct {
	db *sql.DB
}

// NewPlatformRepository создаёт PostgreSQL-реализацию PlatformRepository.
func NewPlatformRepository(store *Store) domain.PlatformRepository {
	return &platformRepository{db: store.DB()}
}

func (r *platformRepository) Create(platform domain.Platform) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO platforms (id, name, description) VALUES ($1, $2, $3)
	`, platform.ID, platform.Name, platform.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePlatformName
		}
		return fmt.Errorf("insert platform: %w", err)
	}

	return nil
}

func (r *platformRepository) Get(id string) (domain.Platform, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var platform domain.Platform
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description FROM platforms WHERE id = $1
	`, id).Scan(&platform.ID, &platform.Name, &platform.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Platform{}, domain.ErrPlatformNotFound
		}
		return domain.Platform{}, fmt.Errorf("select platform: %w", err)
	}

	return platform, nil
}

func (r *platformRepository) List() ([]domain.Platform, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description FROM platforms ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}
	defer rows.Close()

	platforms := make([]domain.Platform, 0)
	for rows.Next() {
		var platform domain.Platform
		if err := rows.Scan(&platform.ID, &platform.Name, &platform.Description); err != nil {
			return nil, fmt.Errorf("scan platform row: %w", err)
		}
		platforms = append(platforms, platform)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate platform rows: %w", err)
	}

	return platforms, nil
}

func (r *platformRepository) Update(platform domain.Platform) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE platforms SET name = $1, description = $2 WHERE id = $3
	`, platform.Name, platform.Description, platform.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePlatformName
		}
		return fmt.Errorf("update platform: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrPlatformNotFound
	}

	return nil
}

func (r *platformRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM platforms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete platform: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrPlatformNotFound
	}

	return nil
}

var _ domain.PlatformRepository = (*platformRepository)(nil)
