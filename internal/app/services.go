package app

import (
	"github.com/gamestorelab/gamestore/internal/domain"
	"github.com/gamestorelab/gamestore/internal/service/cart"
	"github.com/gamestorelab/gamestore/internal/service/catalog"
	"github.com/gamestorelab/gamestore/internal/service/checkout"
	"github.com/gamestorelab/gamestore/internal/service/order"
	"github.com/gamestorelab/gamestore/internal/service/payment"
	"github.com/gamestorelab/gamestore/internal/service/promotion"
	"github.com/gamestorelab/gamestore/internal/service/review"
	"github.com/gamestorelab/gamestore/internal/service/user"
	"github.com/gamestorelab/gamestore/internal/service/wishlist"
)

// Services собирает прикладной слой витрины поверх репозиториев.
// Транспортный слой (HTTP/gRPC API) подключается к этим сервисам снаружи.
type Services struct {
	Users      *user.Service
	Catalog    *catalog.Service
	Carts      *cart.Service
	Promotions *promotion.Service
	Checkout   *checkout.Service
	Orders     *order.Service
	Payments   *payment.Service
	Reviews    *review.Service
	Wishlist   *wishlist.Service
}

// NewServices связывает сервисы с репозиториями. publisher может быть nil —
// тогда события заказов не публикуются.
func NewServices(deps *Dependencies, publisher domain.EventPublisher) *Services {
	logger := deps.Logger

	checkoutOpts := []checkout.Option{
		checkout.WithIdempotency(deps.Idempotency),
	}
	if publisher != nil {
		checkoutOpts = append(checkoutOpts, checkout.WithPublisher(publisher))
	}

	return &Services{
		Users:   user.NewService(deps.Users, deps.Carts, logger.WithField("component", "user")),
		Catalog: catalog.NewService(deps.Games, deps.Genres, deps.Platforms, logger.WithField("component", "catalog")),
		Carts:   cart.NewService(deps.Carts, deps.Games, logger.WithField("component", "cart")),
		Promotions: promotion.NewService(
			deps.Promotions, logger.WithField("component", "promotion")),
		Checkout: checkout.NewService(
			deps.Carts, deps.Promotions, deps.Orders, deps.Checkout, deps.History,
			logger.WithField("component", "checkout"), checkoutOpts...),
		Orders: order.NewService(
			deps.Orders, deps.History, publisher, logger.WithField("component", "order")),
		Payments: payment.NewService(
			deps.Payments, deps.Orders, deps.History, publisher, logger.WithField("component", "payment")),
		Reviews:  review.NewService(deps.Reviews, deps.Games, logger.WithField("component", "review")),
		Wishlist: wishlist.NewService(deps.Wishlist, deps.Games, logger.WithField("component", "wishlist")),
	}
}
