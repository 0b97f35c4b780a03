package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type wishlistRepository struct {
	db *sql.DB
}

// NewWishlistRepository создаёт PostgreSQL-реализацию WishlistRepository.
func NewWishlistRepository(store *Store) domain.WishlistRepository {
	return &wishlistRepository{db: store.DB()}
}

func (r *wishlistRepository) Add(item domain.WishlistItem) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (id, user_id, game_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, item.ID, item.UserID, item.GameID, item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyInWishlist
		}
		return fmt.Errorf("insert wishlist item: %w", err)
	}

	return nil
}

func (r *wishlistRepository) Get(id string) (domain.WishlistItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var item domain.WishlistItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, game_id, created_at FROM wishlist_items WHERE id = $1
	`, id).Scan(&item.ID, &item.UserID, &item.GameID, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.WishlistItem{}, domain.ErrWishlistItemNotFound
		}
		return domain.WishlistItem{}, fmt.Errorf("select wishlist item: %w", err)
	}

	return item, nil
}

func (r *wishlistRepository) ListByUser(userID string) ([]domain.WishlistItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, game_id, created_at
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.WishlistItem, 0)
	for rows.Next() {
		var item domain.WishlistItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.GameID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist items: %w", err)
	}

	return items, nil
}

func (r *wishlistRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrWishlistItemNotFound
	}

	return nil
}

var _ domain.WishlistRepository = (*wishlistRepository)(nil)
