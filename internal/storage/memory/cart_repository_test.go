package memory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamestorelab/gamestore/internal/domain"
)

func TestEnsureForUserIsIdempotent(t *testing.T) {
	carts := NewCartRepository(NewGameRepository())

	first, err := carts.EnsureForUser("user-1")
	require.NoError(t, err)
	second, err := carts.EnsureForUser("user-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestSnapshotCarriesCatalogPrices(t *testing.T) {
	games := NewGameRepository()
	carts := NewCartRepository(games)

	discount := decimal.RequireFromString("39.99")
	require.NoError(t, games.Create(domain.Game{
		ID:            "game-a",
		Title:         "Alpha",
		Price:         decimal.RequireFromString("59.99"),
		DiscountPrice: &discount,
	}))
	require.NoError(t, games.Create(domain.Game{
		ID:    "game-b",
		Title: "Beta",
		Price: decimal.RequireFromString("20"),
	}))

	cart, err := carts.EnsureForUser("user-1")
	require.NoError(t, err)
	_, err = carts.AddItem(cart.ID, "game-a")
	require.NoError(t, err)
	_, err = carts.AddItem(cart.ID, "game-b")
	require.NoError(t, err)

	snapshot, err := carts.Snapshot("user-1")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, snapshot.CartID)
	require.Len(t, snapshot.Lines, 2)

	line, ok := snapshot.Line("game-a")
	require.True(t, ok)
	assert.Equal(t, "Alpha", line.Title)
	assert.True(t, line.EffectiveUnitPrice().Equal(discount))

	line, ok = snapshot.Line("game-b")
	require.True(t, ok)
	assert.True(t, line.EffectiveUnitPrice().Equal(decimal.RequireFromString("20")))
}

func TestAddItemUniquePerCart(t *testing.T) {
	games := NewGameRepository()
	carts := NewCartRepository(games)
	require.NoError(t, games.Create(domain.Game{
		ID:    "game-a",
		Title: "Alpha",
		Price: decimal.RequireFromString("10"),
	}))

	cart, err := carts.EnsureForUser("user-1")
	require.NoError(t, err)

	_, err = carts.AddItem(cart.ID, "game-a")
	require.NoError(t, err)
	_, err = carts.AddItem(cart.ID, "game-a")
	assert.ErrorIs(t, err, domain.ErrGameAlreadyInCart)

	// У другого пользователя та же игра добавляется свободно.
	other, err := carts.EnsureForUser("user-2")
	require.NoError(t, err)
	_, err = carts.AddItem(other.ID, "game-a")
	assert.NoError(t, err)
}

func TestSnapshotSkipsLinesForDeletedGames(t *testing.T) {
	games := NewGameRepository()
	carts := NewCartRepository(games)
	require.NoError(t, games.Create(domain.Game{
		ID:    "game-a",
		Title: "Alpha",
		Price: decimal.RequireFromString("10"),
	}))

	cart, err := carts.EnsureForUser("user-1")
	require.NoError(t, err)
	_, err = carts.AddItem(cart.ID, "game-a")
	require.NoError(t, err)

	require.NoError(t, games.Delete("game-a"))

	snapshot, err := carts.Snapshot("user-1")
	require.NoError(t, err)
	assert.Empty(t, snapshot.Lines)
}
