// Package order отвечает за просмотр и административное сопровождение заказов.
// Создание заказа сюда не входит — это работа движка чекаута.
package order

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gamestorelab/gamestore/internal/domain"
)

// Service реализует операции над существующими заказами.
type Service struct {
	orders    domain.OrderRepository
	history   domain.OrderHistoryRepository
	publisher domain.EventPublisher
	logger    *log.Entry
}

// NewService создаёт сервис заказов. publisher может быть nil — тогда события
// переходов статуса не публикуются.
func NewService(
	orders domain.OrderRepository,
	history domain.OrderHistoryRepository,
	publisher domain.EventPublisher,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order")
	}
	return &Service{orders: orders, history: history, publisher: publisher, logger: logger}
}

// List возвращает заказы: администратору — все, покупателю — только свои.
func (s *Service) List(actor domain.Actor, limit int) ([]domain.Order, error) {
	if actor.IsAdmin() {
		return s.orders.List(limit)
	}
	return s.orders.ListByUser(actor.UserID, limit)
}

// Get возвращает заказ с проверкой владельца.
func (s *Service) Get(actor domain.Actor, id string) (domain.Order, error) {
	order, err := s.orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}
	if err := domain.RequireOwner(actor, order.UserID); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// UpdateInput описывает административное обновление заказа.
type UpdateInput struct {
	// Status, если задан, применяется через таблицу переходов.
	Status *domain.OrderStatus
	// Notes, если задан, перезаписывает заметки.
	Notes *string
	// Reason попадает в историю переходов статуса.
	Reason string
}

// Update применяет статус и заметки к заказу. Только для администратора;
// недопустимый переход статуса отклоняется таблицей переходов.
func (s *Service) Update(actor domain.Actor, id string, input UpdateInput) (domain.Order, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return domain.Order{}, err
	}

	order, err := s.orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}

	newStatus := order.Status
	if input.Status != nil && *input.Status != order.Status {
		if !input.Status.Valid() {
			return domain.Order{}, domain.NewError(domain.KindInvalidInput, "unknown order status")
		}
		if !order.Status.CanTransitionTo(*input.Status) {
			return domain.Order{}, domain.ErrStatusTransitionDenied
		}
		newStatus = *input.Status
	}

	notes := order.Notes
	if input.Notes != nil {
		notes = *input.Notes
	}

	if err := s.orders.UpdateStatusNotes(id, newStatus, notes); err != nil {
		return domain.Order{}, err
	}

	if newStatus != order.Status {
		s.recordTransition(order, newStatus, input.Reason)
	}

	return s.orders.Get(id)
}

// Delete удаляет заказ вместе с позициями. Только для администратора.
func (s *Service) Delete(actor domain.Actor, id string) error {
	if err := domain.RequireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.orders.Get(id); err != nil {
		return err
	}
	return s.orders.Delete(id)
}

// ListByUser возвращает заказы произвольного пользователя. Только для администратора.
func (s *Service) ListByUser(actor domain.Actor, userID string, limit int) ([]domain.Order, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.orders.ListByUser(userID, limit)
}

// History возвращает историю переходов статуса заказа с проверкой владельца.
func (s *Service) History(actor domain.Actor, orderID string) ([]domain.StatusChange, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(actor, order.UserID); err != nil {
		return nil, err
	}
	return s.history.List(orderID)
}

// recordTransition пишет историю и публикует событие перехода. Ошибки этих
// side-эффектов только логируются: статус уже применён.
func (s *Service) recordTransition(order domain.Order, to domain.OrderStatus, reason string) {
	change := domain.StatusChange{
		OrderID:  order.ID,
		From:     order.Status,
		To:       to,
		Reason:   reason,
		Occurred: time.Now().UTC(),
	}

	if s.history != nil {
		if err := s.history.Append(change); err != nil {
			s.logger.WithError(err).WithField("order_id", order.ID).Warn("append status history failed")
		}
	}
	if s.publisher != nil {
		if err := s.publisher.OrderStatusChanged(change); err != nil {
			s.logger.WithError(err).WithField("order_id", order.ID).Warn("publish status change failed")
		}
	}

	s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"from":     string(order.Status),
		"to":       string(to),
	}).Info("order status changed")
}
