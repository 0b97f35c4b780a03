package domain

import "time"

// WishlistItem — игра, отложенная пользователем на будущее; пара
// (пользователь, игра) уникальна.
type WishlistItem struct {
	ID        string
	UserID    string
	GameID    string
	CreatedAt time.Time
}

// Validate проверяет инварианты записи wishlist.
func (w *WishlistItem) Validate() []error {
	var errs []error

	if w.UserID == "" {
		errs = append(errs, ErrUserIDRequired)
	}
	if w.GameID == "" {
		errs = append(errs, ErrGameIDRequired)
	}

	return errs
}
