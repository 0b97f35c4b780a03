package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type checkoutRepository struct {
	db *sql.DB
}

// NewCheckoutRepository создаёт PostgreSQL-реализацию CheckoutRepository.
func NewCheckoutRepository(store *Store) domain.CheckoutRepository {
	return &checkoutRepository{db: store.DB()}
}

// CreateOrderFromCart вставляет заказ с позициями и удаляет потреблённые строки
// корзины в одной транзакции. Строка корзины блокируется FOR UPDATE, так что
// два конкурентных чекаута одной корзины сериализуются; проигравший видит
// недостающие строки и откатывается с ErrCartLineConsumed.
func (r *checkoutRepository) CreateOrderFromCart(order domain.Order, cartID string, gameIDs []string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var lockedCartID string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM carts WHERE id = $1 FOR UPDATE
	`, cartID).Scan(&lockedCartID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrCartNotFound
			return domain.Order{}, err
		}
		return domain.Order{}, fmt.Errorf("lock cart: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, user_id, total_amount, discounted_amount, status, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		order.ID, order.UserID, order.TotalAmount, nullDecimal(order.DiscountedAmount),
		string(order.Status), order.Notes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, game_id, title, unit_price, created_at)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, item.ID, order.ID, item.GameID, item.Title, item.UnitPrice, item.CreatedAt); err != nil {
			return domain.Order{}, fmt.Errorf("insert order item: %w", err)
		}
	}

	// Удаляем строки по одной и сверяем счётчик: если какая-то строка уже
	// исчезла, снапшот устарел и заказ создавать нельзя.
	var consumed int64
	for _, gameID := range gameIDs {
		res, execErr := tx.ExecContext(ctx, `
			DELETE FROM cart_items WHERE cart_id = $1 AND game_id = $2
		`, cartID, gameID)
		if execErr != nil {
			err = fmt.Errorf("consume cart line: %w", execErr)
			return domain.Order{}, err
		}
		affected, raErr := res.RowsAffected()
		if raErr != nil {
			err = fmt.Errorf("rows affected: %w", raErr)
			return domain.Order{}, err
		}
		consumed += affected
	}
	if consumed != int64(len(gameIDs)) {
		err = domain.ErrCartLineConsumed
		return domain.Order{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit checkout: %w", err)
	}

	return order, nil
}

var _ domain.CheckoutRepository = (*checkoutRepository)(nil)
