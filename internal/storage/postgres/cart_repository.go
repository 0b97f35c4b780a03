package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository создаёт PostgreSQL-реализацию CartRepository.
func NewCartRepository(store *Store) domain.CartRepository {
	return &cartRepository{db: store.DB()}
}

func (r *cartRepository) EnsureForUser(userID string) (domain.Cart, error) {
	cart, err := r.GetByUser(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrCartNotFound) {
		return domain.Cart{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	cart = domain.Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO carts (id, user_id, created_at) VALUES ($1, $2, $3)
	`, cart.ID, cart.UserID, cart.CreatedAt)
	if err != nil {
		// Конкурентное создание: корзину успел завести параллельный запрос.
		if isUniqueViolation(err) {
			return r.GetByUser(userID)
		}
		return domain.Cart{}, fmt.Errorf("insert cart: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) GetByUser(userID string) (domain.Cart, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var cart domain.Cart
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at FROM carts WHERE user_id = $1
	`, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		return domain.Cart{}, fmt.Errorf("select cart by user: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) Get(cartID string) (domain.Cart, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var cart domain.Cart
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at FROM carts WHERE id = $1
	`, cartID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		return domain.Cart{}, fmt.Errorf("select cart: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) Snapshot(userID string) (domain.CartSnapshot, error) {
	cart, err := r.GetByUser(userID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.id, ci.game_id, g.title, g.price, g.discount_price
		FROM cart_items ci
		JOIN games g ON g.id = ci.game_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at ASC, ci.id ASC
	`, cart.ID)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("load cart snapshot: %w", err)
	}
	defer rows.Close()

	snapshot := domain.CartSnapshot{
		CartID: cart.ID,
		UserID: cart.UserID,
		Lines:  make([]domain.CartLine, 0),
	}
	for rows.Next() {
		var line domain.CartLine
		var discountPrice decimal.NullDecimal
		if err := rows.Scan(&line.CartItemID, &line.GameID, &line.Title, &line.Price, &discountPrice); err != nil {
			return domain.CartSnapshot{}, fmt.Errorf("scan cart line: %w", err)
		}
		line.DiscountPrice = decimalPtr(discountPrice)
		snapshot.Lines = append(snapshot.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("iterate cart lines: %w", err)
	}

	return snapshot, nil
}

func (r *cartRepository) AddItem(cartID, gameID string) (domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	item := domain.CartItem{
		ID:        uuid.NewString(),
		CartID:    cartID,
		GameID:    gameID,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (id, cart_id, game_id, created_at) VALUES ($1, $2, $3, $4)
	`, item.ID, item.CartID, item.GameID, item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.CartItem{}, domain.ErrGameAlreadyInCart
		}
		return domain.CartItem{}, fmt.Errorf("insert cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) GetItem(itemID string) (domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var item domain.CartItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, cart_id, game_id, created_at FROM cart_items WHERE id = $1
	`, itemID).Scan(&item.ID, &item.CartID, &item.GameID, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CartItem{}, domain.ErrCartItemNotFound
		}
		return domain.CartItem{}, fmt.Errorf("select cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) ReplaceItemGame(itemID, gameID string) (domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items SET game_id = $1 WHERE id = $2
	`, gameID, itemID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.CartItem{}, domain.ErrGameAlreadyInCart
		}
		return domain.CartItem{}, fmt.Errorf("update cart item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.CartItem{}, domain.ErrCartItemNotFound
	}

	return r.GetItem(itemID)
}

func (r *cartRepository) RemoveItem(itemID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCartItemNotFound
	}

	return nil
}

func (r *cartRepository) Clear(cartID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}

var _ domain.CartRepository = (*cartRepository)(nil)
