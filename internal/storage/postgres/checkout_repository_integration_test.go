package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamestorelab/gamestore/internal/domain"
)

func seedCustomerWithCart(t *testing.T, store *Store, prices ...string) (domain.Cart, []string) {
	t.Helper()

	users := NewUserRepository(store)
	games := NewGameRepository(store)
	carts := NewCartRepository(store)

	now := time.Now().UTC()
	user := domain.User{
		ID:        uuid.NewString(),
		Username:  "customer-" + uuid.NewString()[:8],
		Email:     "customer@example.com",
		Role:      domain.UserRoleCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, users.Create(user))

	cart, err := carts.EnsureForUser(user.ID)
	require.NoError(t, err)

	gameIDs := make([]string, 0, len(prices))
	for i, price := range prices {
		game := domain.Game{
			ID:        uuid.NewString(),
			Title:     "Game " + uuid.NewString()[:8],
			Price:     decimal.RequireFromString(price),
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, games.Create(game), "seed game %d", i)
		_, err := carts.AddItem(cart.ID, game.ID)
		require.NoError(t, err)
		gameIDs = append(gameIDs, game.ID)
	}

	return cart, gameIDs
}

func TestCheckoutRepository_CreateOrderFromCart(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)

	cart, gameIDs := seedCustomerWithCart(t, store, "20.00", "30.00", "15.00")
	checkout := NewCheckoutRepository(store)
	orders := NewOrderRepository(store)
	carts := NewCartRepository(store)

	now := time.Now().UTC()
	order := domain.Order{
		ID:          uuid.NewString(),
		UserID:      cart.UserID,
		TotalAmount: decimal.RequireFromString("50.00"),
		Status:      domain.OrderStatusDelivered,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, gameID := range gameIDs[:2] {
		order.Items = append(order.Items, domain.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			GameID:    gameID,
			Title:     "snapshot title",
			UnitPrice: decimal.RequireFromString("25.00"),
			CreatedAt: now,
		})
	}

	created, err := checkout.CreateOrderFromCart(order, cart.ID, gameIDs[:2])
	require.NoError(t, err)
	assert.Equal(t, order.ID, created.ID)

	stored, err := orders.Get(order.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
	assert.True(t, stored.TotalAmount.Equal(order.TotalAmount))
	assert.Nil(t, stored.DiscountedAmount)
	assert.Equal(t, domain.OrderStatusDelivered, stored.Status)

	// Невыбранная позиция остаётся в корзине.
	snapshot, err := carts.Snapshot(cart.UserID)
	require.NoError(t, err)
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, gameIDs[2], snapshot.Lines[0].GameID)
}

func TestCheckoutRepository_ConsumedLineRollsBack(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)

	cart, gameIDs := seedCustomerWithCart(t, store, "10.00")
	checkout := NewCheckoutRepository(store)
	orders := NewOrderRepository(store)
	carts := NewCartRepository(store)

	// Конкурентный чекаут уже забрал единственную строку.
	snapshot, err := carts.Snapshot(cart.UserID)
	require.NoError(t, err)
	require.NoError(t, carts.RemoveItem(snapshot.Lines[0].CartItemID))

	now := time.Now().UTC()
	order := domain.Order{
		ID:          uuid.NewString(),
		UserID:      cart.UserID,
		TotalAmount: decimal.RequireFromString("10.00"),
		Status:      domain.OrderStatusDelivered,
		Items: []domain.OrderItem{{
			ID:        uuid.NewString(),
			GameID:    gameIDs[0],
			Title:     "gone",
			UnitPrice: decimal.RequireFromString("10.00"),
			CreatedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = checkout.CreateOrderFromCart(order, cart.ID, gameIDs)
	require.ErrorIs(t, err, domain.ErrCartLineConsumed)

	// Транзакция откатилась: заказа нет.
	_, err = orders.Get(order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestIdempotencyRepository_Lifecycle(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)

	repo := NewIdempotencyRepository(store)
	key := uuid.NewString()
	ttl := time.Now().UTC().Add(time.Hour)

	_, err := repo.CreateProcessing(key, "hash-1", ttl)
	require.NoError(t, err)

	// Занятый ключ не перезаписывается.
	_, err = repo.CreateProcessing(key, "hash-2", ttl)
	require.ErrorIs(t, err, domain.ErrCheckoutInFlight)

	require.NoError(t, repo.MarkDone(key, "order-1"))
	record, err := repo.Get(key)
	require.NoError(t, err)
	assert.Equal(t, domain.IdempotencyStatusDone, record.Status)
	assert.Equal(t, "order-1", record.OrderID)

	// Failed-ключ можно занять заново.
	failedKey := uuid.NewString()
	_, err = repo.CreateProcessing(failedKey, "hash-1", ttl)
	require.NoError(t, err)
	require.NoError(t, repo.MarkFailed(failedKey))
	_, err = repo.CreateProcessing(failedKey, "hash-1", ttl)
	require.NoError(t, err)

	deleted, err := repo.DeleteExpired(time.Now().UTC().Add(2*time.Hour), 100)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
}
