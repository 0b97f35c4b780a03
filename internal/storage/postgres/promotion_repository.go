package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type promotionRepository struct {
	db *sql.DB
}

// NewPromotionRepository создаёт PostgreSQL-реализацию PromotionRepository.
func NewPromotionRepository(store *Store) domain.PromotionRepository {
	return &promotionRepository{db: store.DB()}
}

func (r *promotionRepository) Create(promotion domain.Promotion) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO promotions (
			id, code, description, discount_type, discount_value, minimum_order,
			start_date, end_date, is_active, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		promotion.ID, promotion.Code, promotion.Description, string(promotion.DiscountType),
		promotion.DiscountValue, nullDecimal(promotion.MinimumOrder),
		nullTime(promotion.StartDate), nullTime(promotion.EndDate), promotion.IsActive,
		promotion.CreatedAt, promotion.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePromotionCode
		}
		return fmt.Errorf("insert promotion: %w", err)
	}

	return nil
}

func (r *promotionRepository) Get(id string) (domain.Promotion, error) {
	return r.getBy(`WHERE id = $1`, id)
}

func (r *promotionRepository) GetByCode(code string) (domain.Promotion, error) {
	return r.getBy(`WHERE code = $1`, code)
}

func (r *promotionRepository) getBy(where, arg string) (domain.Promotion, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	promotion, err := scanPromotion(r.db.QueryRowContext(ctx, `
		SELECT id, code, description, discount_type, discount_value, minimum_order,
		       start_date, end_date, is_active, created_at, updated_at
		FROM promotions
	`+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Promotion{}, domain.ErrPromotionNotFound
		}
		return domain.Promotion{}, fmt.Errorf("select promotion: %w", err)
	}

	return promotion, nil
}

func (r *promotionRepository) List() ([]domain.Promotion, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, description, discount_type, discount_value, minimum_order,
		       start_date, end_date, is_active, created_at, updated_at
		FROM promotions
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	defer rows.Close()

	promotions := make([]domain.Promotion, 0)
	for rows.Next() {
		promotion, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan promotion row: %w", err)
		}
		promotions = append(promotions, promotion)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate promotion rows: %w", err)
	}

	return promotions, nil
}

func (r *promotionRepository) Update(promotion domain.Promotion) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE promotions
		SET code = $1,
		    description = $2,
		    discount_type = $3,
		    discount_value = $4,
		    minimum_order = $5,
		    start_date = $6,
		    end_date = $7,
		    is_active = $8,
		    updated_at = $9
		WHERE id = $10
	`,
		promotion.Code, promotion.Description, string(promotion.DiscountType),
		promotion.DiscountValue, nullDecimal(promotion.MinimumOrder),
		nullTime(promotion.StartDate), nullTime(promotion.EndDate), promotion.IsActive,
		promotion.UpdatedAt, promotion.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePromotionCode
		}
		return fmt.Errorf("update promotion: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrPromotionNotFound
	}

	return nil
}

func (r *promotionRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete promotion: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrPromotionNotFound
	}

	return nil
}

func scanPromotion(row rowScanner) (domain.Promotion, error) {
	var (
		promotion    domain.Promotion
		discountType string
		minimumOrder decimal.NullDecimal
		startDate    sql.NullTime
		endDate      sql.NullTime
	)
	if err := row.Scan(
		&promotion.ID, &promotion.Code, &promotion.Description, &discountType,
		&promotion.DiscountValue, &minimumOrder, &startDate, &endDate,
		&promotion.IsActive, &promotion.CreatedAt, &promotion.UpdatedAt,
	); err != nil {
		return domain.Promotion{}, err
	}
	promotion.DiscountType = domain.DiscountType(discountType)
	promotion.MinimumOrder = decimalPtr(minimumOrder)
	promotion.StartDate = timePtr(startDate)
	promotion.EndDate = timePtr(endDate)
	return promotion, nil
}

var _ domain.PromotionRepository = (*promotionRepository)(nil)
