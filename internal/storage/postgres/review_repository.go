package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository создаёт PostgreSQL-реализацию ReviewRepository.
func NewReviewRepository(store *Store) domain.ReviewRepository {
	return &reviewRepository{db: store.DB()}
}

func (r *reviewRepository) Create(review domain.Review) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, user_id, game_id, rating, comment, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		review.ID, review.UserID, review.GameID, review.Rating,
		review.Comment, review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReview
		}
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

func (r *reviewRepository) Get(id string) (domain.Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var review domain.Review
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, game_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`, id).Scan(
		&review.ID, &review.UserID, &review.GameID, &review.Rating,
		&review.Comment, &review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Review{}, domain.ErrReviewNotFound
		}
		return domain.Review{}, fmt.Errorf("select review: %w", err)
	}

	return review, nil
}

func (r *reviewRepository) List(filter domain.ReviewFilter) ([]domain.Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		conds []string
		args  []any
	)
	if filter.GameID != "" {
		args = append(args, filter.GameID)
		conds = append(conds, fmt.Sprintf("game_id = $%d", len(args)))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Rating > 0 {
		args = append(args, filter.Rating)
		conds = append(conds, fmt.Sprintf("rating = $%d", len(args)))
	}

	query := `
		SELECT id, user_id, game_id, rating, comment, created_at, updated_at
		FROM reviews
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID, &review.UserID, &review.GameID, &review.Rating,
			&review.Comment, &review.CreatedAt, &review.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) Update(review domain.Review) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE reviews
		SET rating = $1,
		    comment = $2,
		    updated_at = $3
		WHERE id = $4
	`, review.Rating, review.Comment, review.UpdatedAt, review.ID)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrReviewNotFound
	}

	return nil
}

func (r *reviewRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrReviewNotFound
	}

	return nil
}

var _ domain.ReviewRepository = (*reviewRepository)(nil)
