// Package review управляет отзывами пользователей на игры.
package review

import (
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/gamestorelab/gamestore/internal/domain"
)

// Service реализует операции над отзывами.
type Service struct {
	reviews domain.ReviewRepository
	games   domain.GameRepository
	logger  *log.Entry
}

// NewService создаёт сервис отзывов.
func NewService(reviews domain.ReviewRepository, games domain.GameRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "review")
	}
	return &Service{reviews: reviews, games: games, logger: logger}
}

// Create сохраняет отзыв от имени актора. Покупатель пишет только от своего
// аккаунта; повторный отзыв на ту же игру — конфликт.
func (s *Service) Create(actor domain.Actor, review domain.Review) (domain.Review, error) {
	if err := domain.RequireOwner(actor, review.UserID); err != nil {
		return domain.Review{}, err
	}
	if errs := review.Validate(); len(errs) > 0 {
		return domain.Review{}, domain.WrapError(domain.KindInvalidInput, "invalid review", errors.Join(errs...))
	}
	if _, err := s.games.Get(review.GameID); err != nil {
		return domain.Review{}, err
	}

	now := time.Now().UTC()
	review.ID = uuid.NewString()
	review.CreatedAt = now
	review.UpdatedAt = now
	if err := s.reviews.Create(review); err != nil {
		return domain.Review{}, err
	}
	return review, nil
}

// List возвращает отзывы с необязательными фильтрами; доступно всем.
func (s *Service) List(filter domain.ReviewFilter) ([]domain.Review, error) {
	return s.reviews.List(filter)
}

// Get возвращает отзыв по идентификатору.
func (s *Service) Get(id string) (domain.Review, error) {
	return s.reviews.Get(id)
}

// Update меняет рейтинг и текст собственного отзыва.
func (s *Service) Update(actor domain.Actor, id string, rating int, comment string) (domain.Review, error) {
	review, err := s.reviews.Get(id)
	if err != nil {
		return domain.Review{}, err
	}
	if err := domain.RequireOwner(actor, review.UserID); err != nil {
		return domain.Review{}, err
	}

	review.Rating = rating
	review.Comment = comment
	review.UpdatedAt = time.Now().UTC()
	if errs := review.Validate(); len(errs) > 0 {
		return domain.Review{}, domain.WrapError(domain.KindInvalidInput, "invalid review", errors.Join(errs...))
	}
	if err := s.reviews.Update(review); err != nil {
		return domain.Review{}, err
	}
	return review, nil
}

// Delete удаляет отзыв: владелец или администратор.
func (s *Service) Delete(actor domain.Actor, id string) error {
	review, err := s.reviews.Get(id)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(actor, review.UserID); err != nil {
		return err
	}
	return s.reviews.Delete(id)
}
