package catalog

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamestorelab/gamestore/internal/domain"
	"github.com/gamestorelab/gamestore/internal/storage/memory"
)

var admin = domain.Actor{UserID: "root", Role: domain.UserRoleAdmin}

func newService() *Service {
	return NewService(
		memory.NewGameRepository(),
		memory.NewGenreRepository(),
		memory.NewPlatformRepository(),
		log.New().WithField("component", "catalog"),
	)
}

func gameInput(title, price string) domain.Game {
	return domain.Game{Title: title, Price: decimal.RequireFromString(price)}
}

func TestCreateGame(t *testing.T) {
	s := newService()

	created, err := s.CreateGame(admin, domain.Game{
		Title: "Alpha",
		Price: decimal.RequireFromString("59.99"),
		Images: []domain.GameImage{
			{URL: "https://cdn.example.com/a1.png"},
			{URL: "https://cdn.example.com/a2.png"},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	require.Len(t, created.Images, 2)
	assert.Equal(t, 1, created.Images[0].OrderIndex)
	assert.Equal(t, 2, created.Images[1].OrderIndex)
	assert.Equal(t, created.ID, created.Images[0].GameID)

	customer := domain.Actor{UserID: "user-1", Role: domain.UserRoleCustomer}
	_, err = s.CreateGame(customer, gameInput("Beta", "10"))
	assert.ErrorIs(t, err, domain.ErrAdminOnly)
}

func TestCreateGameValidation(t *testing.T) {
	s := newService()

	_, err := s.CreateGame(admin, gameInput("", "10"))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))

	discount := decimal.RequireFromString("20")
	invalid := gameInput("Alpha", "10")
	invalid.DiscountPrice = &discount
	_, err = s.CreateGame(admin, invalid)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}

func TestListGamesDefaultPageSize(t *testing.T) {
	s := newService()
	for i := 0; i < 15; i++ {
		_, err := s.CreateGame(admin, gameInput(fmt.Sprintf("Game %02d", i), "10"))
		require.NoError(t, err)
	}

	page, err := s.ListGames(0, 0)
	require.NoError(t, err)
	assert.Len(t, page, defaultPageSize)

	rest, err := s.ListGames(0, defaultPageSize)
	require.NoError(t, err)
	assert.Len(t, rest, 15-defaultPageSize)
}

func TestListHotGames(t *testing.T) {
	s := newService()
	hot := gameInput("Hot", "10")
	hot.IsHot = true
	_, err := s.CreateGame(admin, hot)
	require.NoError(t, err)
	_, err = s.CreateGame(admin, gameInput("Cold", "10"))
	require.NoError(t, err)

	games, err := s.ListHotGames(0, 0)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Hot", games[0].Title)
}

func TestSearchGamesCaseInsensitive(t *testing.T) {
	s := newService()
	_, err := s.CreateGame(admin, gameInput("Dark Souls", "40"))
	require.NoError(t, err)
	_, err = s.CreateGame(admin, gameInput("Stardew Valley", "15"))
	require.NoError(t, err)

	games, err := s.SearchGames("dark", 0, 0)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Dark Souls", games[0].Title)
}

func TestUpdateGameKeepsCreatedAt(t *testing.T) {
	s := newService()
	created, err := s.CreateGame(admin, gameInput("Alpha", "10"))
	require.NoError(t, err)

	created.Title = "Alpha Remastered"
	updated, err := s.UpdateGame(admin, created)
	require.NoError(t, err)
	assert.Equal(t, "Alpha Remastered", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	got, err := s.GetGame(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha Remastered", got.Title)
}

func TestDeleteGame(t *testing.T) {
	s := newService()
	created, err := s.CreateGame(admin, gameInput("Alpha", "10"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteGame(admin, created.ID))
	_, err = s.GetGame(created.ID)
	assert.ErrorIs(t, err, domain.ErrGameNotFound)

	assert.ErrorIs(t, s.DeleteGame(admin, created.ID), domain.ErrGameNotFound)
}

func TestGenreLifecycle(t *testing.T) {
	s := newService()

	genre, err := s.CreateGenre(admin, domain.Genre{Name: "RPG"})
	require.NoError(t, err)
	assert.NotEmpty(t, genre.ID)

	_, err = s.CreateGenre(admin, domain.Genre{Name: "RPG"})
	assert.ErrorIs(t, err, domain.ErrDuplicateGenreName)

	genres, err := s.ListGenres()
	require.NoError(t, err)
	assert.Len(t, genres, 1)

	require.NoError(t, s.DeleteGenre(admin, genre.ID))
	genres, err = s.ListGenres()
	require.NoError(t, err)
	assert.Empty(t, genres)
}

func TestPlatformLifecycle(t *testing.T) {
	s := newService()

	platform, err := s.CreatePlatform(admin, domain.Platform{Name: "PC"})
	require.NoError(t, err)

	_, err = s.CreatePlatform(admin, domain.Platform{Name: "PC"})
	assert.ErrorIs(t, err, domain.ErrDuplicatePlatformName)

	platform.Name = "PC (Windows)"
	updated, err := s.UpdatePlatform(admin, platform)
	require.NoError(t, err)
	assert.Equal(t, "PC (Windows)", updated.Name)
}
