package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type idempotencyRepository struct {
	db *sql.DB
}

// NewIdempotencyRepository создаёт PostgreSQL-реализацию IdempotencyRepository.
func NewIdempotencyRepository(store *Store) domain.IdempotencyRepository {
	return &idempotencyRepository{db: store.DB()}
}

// CreateProcessing регистрирует ключ атомарным upsert-ом: занятый ключ не
// трогается (ErrCheckoutInFlight), failed- или протухшая запись
// перезаписывается свежим processing-состоянием.
func (r *idempotencyRepository) CreateProcessing(key, requestHash string, ttlAt time.Time) (domain.IdempotencyRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := time.Now().UTC()
	record := domain.IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		Status:      domain.IdempotencyStatusProcessing,
		TTLAt:       ttlAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO idempotency_keys (key, request_hash, order_id, status, ttl_at, created_at, updated_at)
		VALUES ($1, $2, '', $3, $4, $5, $5)
		ON CONFLICT (key) DO UPDATE
		SET request_hash = EXCLUDED.request_hash,
		    order_id = '',
		    status = EXCLUDED.status,
		    ttl_at = EXCLUDED.ttl_at,
		    updated_at = EXCLUDED.updated_at
		WHERE idempotency_keys.status = $6
		   OR idempotency_keys.ttl_at < $5
	`, key, requestHash, string(domain.IdempotencyStatusProcessing), ttlAt, now,
		string(domain.IdempotencyStatusFailed))
	if err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("insert idempotency key: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.IdempotencyRecord{}, domain.ErrCheckoutInFlight
	}

	return record, nil
}

func (r *idempotencyRepository) Get(key string) (domain.IdempotencyRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var record domain.IdempotencyRecord
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT key, request_hash, order_id, status, ttl_at, created_at, updated_at
		FROM idempotency_keys
		WHERE key = $1
	`, key).Scan(
		&record.Key, &record.RequestHash, &record.OrderID, &status,
		&record.TTLAt, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyNotFound
		}
		return domain.IdempotencyRecord{}, fmt.Errorf("select idempotency key: %w", err)
	}
	record.Status = domain.IdempotencyStatus(status)

	return record, nil
}

func (r *idempotencyRepository) MarkDone(key, orderID string) error {
	return r.markStatus(key, domain.IdempotencyStatusDone, orderID)
}

func (r *idempotencyRepository) MarkFailed(key string) error {
	return r.markStatus(key, domain.IdempotencyStatusFailed, "")
}

func (r *idempotencyRepository) markStatus(key string, status domain.IdempotencyStatus, orderID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE idempotency_keys
		SET status = $1,
		    order_id = $2,
		    updated_at = NOW()
		WHERE key = $3
	`, string(status), orderID, key)
	if err != nil {
		return fmt.Errorf("update idempotency key: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrIdempotencyKeyNotFound
	}

	return nil
}

func (r *idempotencyRepository) DeleteExpired(before time.Time, limit int) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM idempotency_keys
		WHERE key IN (
			SELECT key FROM idempotency_keys
			WHERE ttl_at < $1
			ORDER BY ttl_at ASC
			LIMIT $2
		)
	`, before, limit)
	if err != nil {
		return 0, fmt.Errorf("delete expired idempotency keys: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	return int(affected), nil
}

var _ domain.IdempotencyRepository = (*idempotencyRepository)(nil)
