package app

import (
	"testing"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamestorelab/gamestore/internal/domain"
	"github.com/gamestorelab/gamestore/internal/service/checkout"
	"github.com/gamestorelab/gamestore/internal/service/payment"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":9090", cfg.OpsAddr)
	assert.Empty(t, cfg.PostgresDSN)
	assert.True(t, cfg.MigrateOnStart)
	assert.NotZero(t, cfg.IdempotencyCleanupInterval)
}

// Сквозной сценарий поверх in-memory хранилища: регистрация, каталог, корзина,
// чекаут и оплата через общую сборку сервисов.
func TestServicesWiredOverMemoryDependencies(t *testing.T) {
	deps := NewMemoryDependencies(log.New().WithField("component", "app-test"))
	services := NewServices(deps, nil)

	registered, err := services.Users.Register(domain.User{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	customer := domain.Actor{UserID: registered.ID, Role: domain.UserRoleCustomer}
	admin := domain.Actor{UserID: "root", Role: domain.UserRoleAdmin}

	game, err := services.Catalog.CreateGame(admin, domain.Game{
		Title: "Alpha",
		Price: decimal.RequireFromString("40"),
	})
	require.NoError(t, err)

	_, err = services.Carts.AddItem(customer, game.ID)
	require.NoError(t, err)

	order, err := services.Checkout.Checkout(checkout.Request{
		Actor:           customer,
		SelectedGameIDs: []string{game.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, order.Status)

	paid, err := services.Payments.Create(customer, payment.CreateInput{
		OrderID: order.ID,
		Method:  domain.PaymentMethodCreditCard,
		Amount:  decimal.RequireFromString("40"),
		Status:  domain.PaymentStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, paid.Status)

	confirmed, err := services.Orders.Get(customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, confirmed.Status)

	history, err := services.Orders.History(customer, order.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
