package domain

import "time"

// Review — отзыв пользователя на игру; у пары (пользователь, игра) не больше
// одного отзыва.
type Review struct {
	ID        string
	UserID    string
	GameID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет инварианты отзыва.
func (r *Review) Validate() []error {
	var errs []error

	if r.UserID == "" {
		errs = append(errs, ErrUserIDRequired)
	}
	if r.GameID == "" {
		errs = append(errs, ErrGameIDRequired)
	}
	if r.Rating < 1 || r.Rating > 5 {
		errs = append(errs, ErrRatingOutOfRange)
	}

	return errs
}

// ReviewFilter задаёт необязательные фильтры выборки отзывов.
type ReviewFilter struct {
	GameID string
	UserID string
	Rating int
}
