// Package checkout реализует движок оформления заказа: превращает выбранные
// позиции корзины в заказ с учётом промокода, одной атомарной транзакцией.
package checkout

import (
	log "github.com/sirupsen/logrus"

	"github.com/gamestorelab/gamestore/internal/domain"
	"github.com/gamestorelab/gamestore/internal/metrics"
)

// Request — запрос на чекаут: пользователь выбирает подмножество корзины,
// опциональный промокод и заметки к заказу.
type Request struct {
	Actor           domain.Actor
	SelectedGameIDs []string
	PromotionCode   string
	Notes           string
	// IdempotencyKey позволяет безопасно повторять запрос: повтор с тем же
	// ключом возвращает уже созданный заказ. Пустой ключ отключает защиту.
	IdempotencyKey string
}

// Service — оркестратор чекаута.
type Service struct {
	carts       domain.CartRepository
	promotions  domain.PromotionRepository
	orders      domain.OrderRepository
	checkout    domain.CheckoutRepository
	history     domain.OrderHistoryRepository
	idempotency domain.IdempotencyRepository
	publisher   domain.EventPublisher
	logger      *log.Entry
	metrics     *metrics.CheckoutMetrics
}

// Option настраивает необязательные зависимости сервиса.
type Option func(*Service)

// WithIdempotency включает защиту от повторных чекаутов по idempotency-ключу.
func WithIdempotency(repo domain.IdempotencyRepository) Option {
	return func(s *Service) { s.idempotency = repo }
}

// WithPublisher включает публикацию событий order.created после коммита.
func WithPublisher(publisher domain.EventPublisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

// NewService создаёт рабочий экземпляр движка чекаута.
func NewService(
	carts domain.CartRepository,
	promotions domain.PromotionRepository,
	orders domain.OrderRepository,
	checkoutRepo domain.CheckoutRepository,
	history domain.OrderHistoryRepository,
	logger *log.Entry,
	options ...Option,
) *Service {
	s := newService(carts, promotions, orders, checkoutRepo, history, logger, options...)
	s.metrics = metrics.NewCheckoutMetrics()
	return s
}

// NewServiceWithoutMetrics создаёт движок без метрик (для тестов).
func NewServiceWithoutMetrics(
	carts domain.CartRepository,
	promotions domain.PromotionRepository,
	orders domain.OrderRepository,
	checkoutRepo domain.CheckoutRepository,
	history domain.OrderHistoryRepository,
	logger *log.Entry,
	options ...Option,
) *Service {
	return newService(carts, promotions, orders, checkoutRepo, history, logger, options...)
}

func newService(
	carts domain.CartRepository,
	promotions domain.PromotionRepository,
	orders domain.OrderRepository,
	checkoutRepo domain.CheckoutRepository,
	history domain.OrderHistoryRepository,
	logger *log.Entry,
	options ...Option,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "checkout")
	}
	s := &Service{
		carts:      carts,
		promotions: promotions,
		orders:     orders,
		checkout:   checkoutRepo,
		history:    history,
		logger:     logger,
	}
	for _, option := range options {
		option(s)
	}
	return s
}
