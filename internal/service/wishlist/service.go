// Package wishlist управляет списками желаемого.
package wishlist

import (
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/gamestorelab/gamestore/internal/domain"
)

// Service реализует операции над wishlist.
type Service struct {
	wishlist domain.WishlistRepository
	games    domain.GameRepository
	logger   *log.Entry
}

// NewService создаёт сервис wishlist.
func NewService(wishlist domain.WishlistRepository, games domain.GameRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "wishlist")
	}
	return &Service{wishlist: wishlist, games: games, logger: logger}
}

// Add кладёт игру в wishlist пользователя. Покупатель пополняет только свой
// список; дубль игры — конфликт.
func (s *Service) Add(actor domain.Actor, userID, gameID string) (domain.WishlistItem, error) {
	if err := domain.RequireOwner(actor, userID); err != nil {
		return domain.WishlistItem{}, err
	}
	if _, err := s.games.Get(gameID); err != nil {
		return domain.WishlistItem{}, err
	}

	item := domain.WishlistItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		GameID:    gameID,
		CreatedAt: time.Now().UTC(),
	}
	if errs := item.Validate(); len(errs) > 0 {
		return domain.WishlistItem{}, domain.WrapError(domain.KindInvalidInput, "invalid wishlist item", errors.Join(errs...))
	}
	if err := s.wishlist.Add(item); err != nil {
		return domain.WishlistItem{}, err
	}
	return item, nil
}

// List возвращает wishlist: администратор — любого пользователя, покупатель — свой.
func (s *Service) List(actor domain.Actor, userID string) ([]domain.WishlistItem, error) {
	if !actor.IsAdmin() {
		userID = actor.UserID
	}
	return s.wishlist.ListByUser(userID)
}

// Get возвращает запись wishlist с проверкой владельца.
func (s *Service) Get(actor domain.Actor, id string) (domain.WishlistItem, error) {
	item, err := s.wishlist.Get(id)
	if err != nil {
		return domain.WishlistItem{}, err
	}
	if err := domain.RequireOwner(actor, item.UserID); err != nil {
		return domain.WishlistItem{}, err
	}
	return item, nil
}

// Delete удаляет запись wishlist с проверкой владельца.
func (s *Service) Delete(actor domain.Actor, id string) error {
	item, err := s.wishlist.Get(id)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(actor, item.UserID); err != nil {
		return err
	}
	return s.wishlist.Delete(id)
}
