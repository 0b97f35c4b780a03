// Package cart управляет корзиной пользователя до чекаута.
package cart

import (
	log "github.com/sirupsen/logrus"

	"github.com/gamestorelab/gamestore/internal/domain"
)

// Service реализует операции над корзиной. Строки корзины изменяют только два
// участника: этот сервис (до чекаута) и движок чекаута (потребление строк).
type Service struct {
	carts  domain.CartRepository
	games  domain.GameRepository
	logger *log.Entry
}

// NewService создаёт сервис корзины.
func NewService(carts domain.CartRepository, games domain.GameRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "cart")
	}
	return &Service{carts: carts, games: games, logger: logger}
}

// Get возвращает корзину пользователя с позициями и ценами.
// Покупатель видит только свою корзину, администратор — любую.
func (s *Service) Get(actor domain.Actor, userID string) (domain.CartSnapshot, error) {
	if err := domain.RequireOwner(actor, userID); err != nil {
		return domain.CartSnapshot{}, err
	}
	return s.carts.Snapshot(userID)
}

// AddItem кладёт игру в корзину актора. Игра обязана существовать в каталоге;
// повторное добавление той же игры — конфликт.
func (s *Service) AddItem(actor domain.Actor, gameID string) (domain.CartItem, error) {
	if _, err := s.games.Get(gameID); err != nil {
		return domain.CartItem{}, err
	}

	cart, err := s.carts.EnsureForUser(actor.UserID)
	if err != nil {
		return domain.CartItem{}, err
	}

	item, err := s.carts.AddItem(cart.ID, gameID)
	if err != nil {
		return domain.CartItem{}, err
	}

	s.logger.WithFields(log.Fields{
		"user_id": actor.UserID,
		"game_id": gameID,
	}).Debug("game added to cart")
	return item, nil
}

// ReplaceItemGame меняет игру в существующей позиции корзины.
func (s *Service) ReplaceItemGame(actor domain.Actor, itemID, gameID string) (domain.CartItem, error) {
	item, err := s.carts.GetItem(itemID)
	if err != nil {
		return domain.CartItem{}, err
	}
	owner, err := s.carts.Get(item.CartID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if err := domain.RequireOwner(actor, owner.UserID); err != nil {
		return domain.CartItem{}, err
	}
	if _, err := s.games.Get(gameID); err != nil {
		return domain.CartItem{}, err
	}

	return s.carts.ReplaceItemGame(itemID, gameID)
}

// RemoveItem удаляет позицию из корзины с проверкой владельца.
func (s *Service) RemoveItem(actor domain.Actor, itemID string) error {
	item, err := s.carts.GetItem(itemID)
	if err != nil {
		return err
	}
	owner, err := s.carts.Get(item.CartID)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(actor, owner.UserID); err != nil {
		return err
	}

	return s.carts.RemoveItem(itemID)
}

// Clear удаляет все позиции корзины пользователя. Сама корзина остаётся.
func (s *Service) Clear(actor domain.Actor, userID string) error {
	if err := domain.RequireOwner(actor, userID); err != nil {
		return err
	}
	cart, err := s.carts.GetByUser(userID)
	if err != nil {
		return err
	}
	return s.carts.Clear(cart.ID)
}
