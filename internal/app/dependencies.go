package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/gamestorelab/gamestore/internal/domain"
	"github.com/gamestorelab/gamestore/internal/storage/memory"
	"github.com/gamestorelab/gamestore/internal/storage/postgres"
)

// Dependencies содержит репозитории витрины.
type Dependencies struct {
	Users       domain.UserRepository
	Games       domain.GameRepository
	Genres      domain.GenreRepository
	Platforms   domain.PlatformRepository
	Carts       domain.CartRepository
	Promotions  domain.PromotionRepository
	Orders      domain.OrderRepository
	Checkout    domain.CheckoutRepository
	History     domain.OrderHistoryRepository
	Payments    domain.PaymentRepository
	Reviews     domain.ReviewRepository
	Wishlist    domain.WishlistRepository
	Idempotency domain.IdempotencyRepository
	Logger      *log.Entry
}

// NewMemoryDependencies собирает in-memory хранилище для локальной разработки
// и тестов.
func NewMemoryDependencies(logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	games := memory.NewGameRepository()
	carts := memory.NewCartRepository(games)
	orders := memory.NewOrderRepository()

	return &Dependencies{
		Users:       memory.NewUserRepository(),
		Games:       games,
		Genres:      memory.NewGenreRepository(),
		Platforms:   memory.NewPlatformRepository(),
		Carts:       carts,
		Promotions:  memory.NewPromotionRepository(),
		Orders:      orders,
		Checkout:    memory.NewCheckoutRepository(carts, orders),
		History:     memory.NewOrderHistoryRepository(),
		Payments:    memory.NewPaymentRepository(orders),
		Reviews:     memory.NewReviewRepository(),
		Wishlist:    memory.NewWishlistRepository(),
		Idempotency: memory.NewIdempotencyRepository(),
		Logger:      logger,
	}
}

// NewPostgresDependencies собирает репозитории поверх PostgreSQL-подключения.
func NewPostgresDependencies(store *postgres.Store, logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	return &Dependencies{
		Users:       postgres.NewUserRepository(store),
		Games:       postgres.NewGameRepository(store),
		Genres:      postgres.NewGenreRepository(store),
		Platforms:   postgres.NewPlatformRepository(store),
		Carts:       postgres.NewCartRepository(store),
		Promotions:  postgres.NewPromotionRepository(store),
		Orders:      postgres.NewOrderRepository(store),
		Checkout:    postgres.NewCheckoutRepository(store),
		History:     postgres.NewOrderHistoryRepository(store),
		Payments:    postgres.NewPaymentRepository(store),
		Reviews:     postgres.NewReviewRepository(store),
		Wishlist:    postgres.NewWishlistRepository(store),
		Idempotency: postgres.NewIdempotencyRepository(store),
		Logger:      logger,
	}
}
