// Package payment регистрирует платежи по заказам и двигает статус заказа
// после подтверждения оплаты.
package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/gamestorelab/gamestore/internal/domain"
)

// Service реализует платёжные операции. Платёжный провайдер остаётся снаружи:
// сюда приходит уже известный исход (status) и сумма.
type Service struct {
	payments  domain.PaymentRepository
	orders    domain.OrderRepository
	history   domain.OrderHistoryRepository
	publisher domain.EventPublisher
	logger    *log.Entry
}

// NewService создаёт платёжный сервис.
func NewService(
	payments domain.PaymentRepository,
	orders domain.OrderRepository,
	history domain.OrderHistoryRepository,
	publisher domain.EventPublisher,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "payment")
	}
	return &Service{
		payments:  payments,
		orders:    orders,
		history:   history,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateInput описывает регистрируемый платёж.
type CreateInput struct {
	OrderID       string
	Method        domain.PaymentMethod
	Amount        decimal.Decimal
	TransactionID string
	Status        domain.PaymentStatus
	PaymentDate   *time.Time
	FailureReason string
}

// Create регистрирует платёж по заказу актора.
//
// Заказ обязан существовать, принадлежать актору и ждать оплату (DELIVERED).
// Сумма платежа сверяется с суммой к оплате с округлением обеих сторон вниз
// до целой денежной единицы; расхождение отклоняется до каких-либо записей.
// Подтверждённый платёж (COMPLETED) переводит заказ DELIVERED → PROCESSING.
func (s *Service) Create(actor domain.Actor, input CreateInput) (domain.Payment, error) {
	order, err := s.orders.Get(input.OrderID)
	if err != nil {
		return domain.Payment{}, err
	}
	if err := domain.RequireOwner(actor, order.UserID); err != nil {
		return domain.Payment{}, err
	}
	if order.Status != domain.OrderStatusDelivered {
		return domain.Payment{}, domain.ErrOrderNotAwaitingPayment
	}

	expected := domain.FloorToUnit(order.PayableAmount())
	got := domain.FloorToUnit(input.Amount)
	if !domain.SameAmount(expected, got) {
		return domain.Payment{}, domain.ErrPaymentAmountMismatch
	}

	now := time.Now().UTC()
	status := input.Status
	if status == "" {
		status = domain.PaymentStatusPending
	}
	payment := domain.Payment{
		ID:            uuid.NewString(),
		OrderID:       input.OrderID,
		Method:        input.Method,
		Amount:        input.Amount,
		TransactionID: input.TransactionID,
		Status:        status,
		PaymentDate:   input.PaymentDate,
		FailureReason: input.FailureReason,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if errs := payment.Validate(); len(errs) > 0 {
		return domain.Payment{}, domain.WrapError(domain.KindInvalidInput, "invalid payment", errors.Join(errs...))
	}
	if !status.Valid() {
		return domain.Payment{}, domain.NewError(domain.KindInvalidInput, "unknown payment status")
	}

	if err := s.payments.Create(payment); err != nil {
		return domain.Payment{}, err
	}

	if status == domain.PaymentStatusCompleted {
		s.confirmOrder(order, payment)
	}

	return payment, nil
}

// confirmOrder переводит оплаченный заказ в PROCESSING через таблицу переходов.
// Платёж уже сохранён, поэтому ошибки здесь логируются, а не возвращаются.
func (s *Service) confirmOrder(order domain.Order, payment domain.Payment) {
	if !order.Status.CanTransitionTo(domain.OrderStatusProcessing) {
		s.logger.WithField("order_id", order.ID).Warn("paid order cannot transition to processing")
		return
	}

	if err := s.orders.UpdateStatusNotes(order.ID, domain.OrderStatusProcessing, order.Notes); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Error("update order status after payment failed")
		return
	}

	change := domain.StatusChange{
		OrderID:  order.ID,
		From:     order.Status,
		To:       domain.OrderStatusProcessing,
		Reason:   "payment confirmed",
		Occurred: time.Now().UTC(),
	}
	if s.history != nil {
		if err := s.history.Append(change); err != nil {
			s.logger.WithError(err).WithField("order_id", order.ID).Warn("append status history failed")
		}
	}
	if s.publisher != nil {
		order.Status = domain.OrderStatusProcessing
		if err := s.publisher.OrderPaid(order, payment); err != nil {
			s.logger.WithError(err).WithField("order_id", order.ID).Warn("publish order.paid failed")
		}
	}

	s.logger.WithFields(log.Fields{
		"order_id":   order.ID,
		"payment_id": payment.ID,
		"amount":     payment.Amount.String(),
	}).Info("order payment confirmed")
}

// List возвращает все платежи. Только для администратора.
func (s *Service) List(actor domain.Actor, limit int) ([]domain.Payment, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.payments.List(limit)
}

// Get возвращает платёж с проверкой владельца заказа.
func (s *Service) Get(actor domain.Actor, id string) (domain.Payment, error) {
	payment, err := s.payments.Get(id)
	if err != nil {
		return domain.Payment{}, err
	}
	order, err := s.orders.Get(payment.OrderID)
	if err != nil {
		return domain.Payment{}, err
	}
	if err := domain.RequireOwner(actor, order.UserID); err != nil {
		return domain.Payment{}, err
	}
	return payment, nil
}

// ListByUser возвращает платежи по заказам пользователя.
func (s *Service) ListByUser(actor domain.Actor, userID string) ([]domain.Payment, error) {
	if err := domain.RequireOwner(actor, userID); err != nil {
		return nil, err
	}
	return s.payments.ListByUser(userID)
}

// Update перезаписывает платёж. Только для администратора.
func (s *Service) Update(actor domain.Actor, payment domain.Payment) (domain.Payment, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return domain.Payment{}, err
	}
	current, err := s.payments.Get(payment.ID)
	if err != nil {
		return domain.Payment{}, err
	}
	if errs := payment.Validate(); len(errs) > 0 {
		return domain.Payment{}, domain.WrapError(domain.KindInvalidInput, "invalid payment", errors.Join(errs...))
	}
	payment.CreatedAt = current.CreatedAt
	payment.UpdatedAt = time.Now().UTC()
	if err := s.payments.Update(payment); err != nil {
		return domain.Payment{}, err
	}
	return payment, nil
}

// Delete удаляет платёж. Только для администратора.
func (s *Service) Delete(actor domain.Actor, id string) error {
	if err := domain.RequireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.payments.Get(id); err != nil {
		return err
	}
	return s.payments.Delete(id)
}
