package memory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamestorelab/gamestore/internal/domain"
)

func seedCart(t *testing.T, games domain.GameRepository, carts domain.CartRepository, userID string, prices map[string]string) domain.Cart {
	t.Helper()

	cart, err := carts.EnsureForUser(userID)
	require.NoError(t, err)
	for gameID, price := range prices {
		require.NoError(t, games.Create(domain.Game{
			ID:    gameID,
			Title: "Game " + gameID,
			Price: decimal.RequireFromString(price),
		}))
		_, err := carts.AddItem(cart.ID, gameID)
		require.NoError(t, err)
	}
	return cart
}

func buildOrder(userID string, gameIDs ...string) domain.Order {
	now := time.Now().UTC()
	order := domain.Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		TotalAmount: decimal.RequireFromString("10"),
		Status:      domain.OrderStatusDelivered,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, gameID := range gameIDs {
		order.Items = append(order.Items, domain.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			GameID:    gameID,
			UnitPrice: decimal.RequireFromString("10"),
			CreatedAt: now,
		})
	}
	return order
}

func TestCreateOrderFromCartConsumesSelectedLines(t *testing.T) {
	games := NewGameRepository()
	carts := NewCartRepository(games)
	orders := NewOrderRepository()
	checkout := NewCheckoutRepository(carts, orders)

	cart := seedCart(t, games, carts, "user-1", map[string]string{
		"game-a": "10", "game-b": "10", "game-c": "10",
	})

	order := buildOrder("user-1", "game-a", "game-b")
	created, err := checkout.CreateOrderFromCart(order, cart.ID, []string{"game-a", "game-b"})
	require.NoError(t, err)
	assert.Equal(t, order.ID, created.ID)

	stored, err := orders.Get(order.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)

	snapshot, err := carts.Snapshot("user-1")
	require.NoError(t, err)
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, "game-c", snapshot.Lines[0].GameID)
}

func TestCreateOrderFromCartRejectsConsumedLine(t *testing.T) {
	games := NewGameRepository()
	carts := NewCartRepository(games)
	orders := NewOrderRepository()
	checkout := NewCheckoutRepository(carts, orders)

	cart := seedCart(t, games, carts, "user-1", map[string]string{"game-a": "10", "game-b": "10"})

	// game-b уже забрал конкурентный чекаут.
	first := buildOrder("user-1", "game-b")
	_, err := checkout.CreateOrderFromCart(first, cart.ID, []string{"game-b"})
	require.NoError(t, err)

	second := buildOrder("user-1", "game-a", "game-b")
	_, err = checkout.CreateOrderFromCart(second, cart.ID, []string{"game-a", "game-b"})
	assert.ErrorIs(t, err, domain.ErrCartLineConsumed)

	// Ничего не применилось: заказ не создан, game-a осталась в корзине.
	_, err = orders.Get(second.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	snapshot, err := carts.Snapshot("user-1")
	require.NoError(t, err)
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, "game-a", snapshot.Lines[0].GameID)
}

func TestCreateOrderFromCartUnknownCart(t *testing.T) {
	games := NewGameRepository()
	carts := NewCartRepository(games)
	checkout := NewCheckoutRepository(carts, NewOrderRepository())

	_, err := checkout.CreateOrderFromCart(buildOrder("user-1", "game-a"), "missing", []string{"game-a"})
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}
