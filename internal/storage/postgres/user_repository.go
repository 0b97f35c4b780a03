package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository создаёт PostgreSQL-реализацию UserRepository.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{db: store.DB()}
}

func (r *userRepository) Create(user domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, username, email, role, address, phone, avatar_url, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		user.ID, user.Username, user.Email, string(user.Role),
		user.Address, user.Phone, user.AvatarURL, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *userRepository) Get(id string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var user domain.User
	var role string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, role, address, phone, avatar_url, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(
		&user.ID, &user.Username, &user.Email, &role,
		&user.Address, &user.Phone, &user.AvatarURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}
	user.Role = domain.UserRole(role)

	return user, nil
}

func (r *userRepository) List(limit, offset int) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, email, role, address, phone, avatar_url, created_at, updated_at
		FROM users
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		var role string
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &role,
			&user.Address, &user.Phone, &user.AvatarURL, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		user.Role = domain.UserRole(role)
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}

func (r *userRepository) Update(user domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET username = $1,
		    email = $2,
		    role = $3,
		    address = $4,
		    phone = $5,
		    avatar_url = $6,
		    updated_at = $7
		WHERE id = $8
	`,
		user.Username, user.Email, string(user.Role),
		user.Address, user.Phone, user.AvatarURL, user.UpdatedAt, user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("update user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

var _ domain.UserRepository = (*userRepository)(nil)
