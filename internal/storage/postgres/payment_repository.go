package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository создаёт PostgreSQL-реализацию PaymentRepository.
func NewPaymentRepository(store *Store) domain.PaymentRepository {
	return &paymentRepository{db: store.DB()}
}

func (r *paymentRepository) Create(payment domain.Payment) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (
			id, order_id, method, amount, transaction_id, status,
			payment_date, failure_reason, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		payment.ID, payment.OrderID, string(payment.Method), payment.Amount,
		payment.TransactionID, string(payment.Status), nullTime(payment.PaymentDate),
		payment.FailureReason, payment.CreatedAt, payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

func (r *paymentRepository) Get(id string) (domain.Payment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	payment, err := scanPayment(r.db.QueryRowContext(ctx, `
		SELECT id, order_id, method, amount, transaction_id, status,
		       payment_date, failure_reason, created_at, updated_at
		FROM payments
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Payment{}, domain.ErrPaymentNotFound
		}
		return domain.Payment{}, fmt.Errorf("select payment: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) List(limit int) ([]domain.Payment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := `
		SELECT id, order_id, method, amount, transaction_id, status,
		       payment_date, failure_reason, created_at, updated_at
		FROM payments
		ORDER BY created_at DESC, id DESC
	`

	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, query+" LIMIT $1", limit)
	} else {
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

func (r *paymentRepository) ListByUser(userID string) ([]domain.Payment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.order_id, p.method, p.amount, p.transaction_id, p.status,
		       p.payment_date, p.failure_reason, p.created_at, p.updated_at
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		WHERE o.user_id = $1
		ORDER BY p.created_at DESC, p.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list payments by user: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

func (r *paymentRepository) Update(payment domain.Payment) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET method = $1,
		    amount = $2,
		    transaction_id = $3,
		    status = $4,
		    payment_date = $5,
		    failure_reason = $6,
		    updated_at = $7
		WHERE id = $8
	`,
		string(payment.Method), payment.Amount, payment.TransactionID,
		string(payment.Status), nullTime(payment.PaymentDate), payment.FailureReason,
		payment.UpdatedAt, payment.ID,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

func (r *paymentRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

func scanPayment(row rowScanner) (domain.Payment, error) {
	var (
		payment     domain.Payment
		method      string
		status      string
		paymentDate sql.NullTime
	)
	if err := row.Scan(
		&payment.ID, &payment.OrderID, &method, &payment.Amount,
		&payment.TransactionID, &status, &paymentDate, &payment.FailureReason,
		&payment.CreatedAt, &payment.UpdatedAt,
	); err != nil {
		return domain.Payment{}, err
	}
	payment.Method = domain.PaymentMethod(method)
	payment.Status = domain.PaymentStatus(status)
	payment.PaymentDate = timePtr(paymentDate)
	return payment, nil
}

func collectPayments(rows *sql.Rows) ([]domain.Payment, error) {
	payments := make([]domain.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}

	return payments, nil
}

var _ domain.PaymentRepository = (*paymentRepository)(nil)
