package review

import (
	"testing"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamestorelab/gamestore/internal/domain"
	"github.com/gamestorelab/gamestore/internal/storage/memory"
)

type fixture struct {
	games   domain.GameRepository
	service *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	games := memory.NewGameRepository()
	require.NoError(t, games.Create(domain.Game{
		ID:    "game-a",
		Title: "Alpha",
		Price: decimal.RequireFromString("20"),
	}))
	return &fixture{
		games:   games,
		service: NewService(memory.NewReviewRepository(), games, log.New().WithField("component", "review")),
	}
}

func TestCreateReview(t *testing.T) {
	f := newFixture(t)
	actor := domain.Actor{UserID: "user-1", Role: domain.UserRoleCustomer}

	created, err := f.service.Create(actor, domain.Review{
		UserID:  "user-1",
		GameID:  "game-a",
		Rating:  5,
		Comment: "great",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// Второй отзыв той же пары (пользователь, игра) — конфликт.
	_, err = f.service.Create(actor, domain.Review{UserID: "user-1", GameID: "game-a", Rating: 3})
	assert.ErrorIs(t, err, domain.ErrDuplicateReview)

	// От чужого имени писать нельзя.
	_, err = f.service.Create(actor, domain.Review{UserID: "user-2", GameID: "game-a", Rating: 4})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestCreateReviewValidation(t *testing.T) {
	f := newFixture(t)
	actor := domain.Actor{UserID: "user-1", Role: domain.UserRoleCustomer}

	_, err := f.service.Create(actor, domain.Review{UserID: "user-1", GameID: "game-a", Rating: 6})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))

	_, err = f.service.Create(actor, domain.Review{UserID: "user-1", GameID: "ghost", Rating: 4})
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestUpdateReviewOwnerOnly(t *testing.T) {
	f := newFixture(t)
	owner := domain.Actor{UserID: "user-1", Role: domain.UserRoleCustomer}

	created, err := f.service.Create(owner, domain.Review{UserID: "user-1", GameID: "game-a", Rating: 4})
	require.NoError(t, err)

	updated, err := f.service.Update(owner, created.ID, 2, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
	assert.Equal(t, "changed my mind", updated.Comment)

	stranger := domain.Actor{UserID: "user-2", Role: domain.UserRoleCustomer}
	_, err = f.service.Update(stranger, created.ID, 1, "")
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestDeleteReviewOwnerOrAdmin(t *testing.T) {
	f := newFixture(t)
	owner := domain.Actor{UserID: "user-1", Role: domain.UserRoleCustomer}

	created, err := f.service.Create(owner, domain.Review{UserID: "user-1", GameID: "game-a", Rating: 4})
	require.NoError(t, err)

	stranger := domain.Actor{UserID: "user-2", Role: domain.UserRoleCustomer}
	assert.ErrorIs(t, f.service.Delete(stranger, created.ID), domain.ErrAccessDenied)

	admin := domain.Actor{UserID: "root", Role: domain.UserRoleAdmin}
	require.NoError(t, f.service.Delete(admin, created.ID))

	_, err = f.service.Get(created.ID)
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
}

func TestListReviewsFiltered(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.games.Create(domain.Game{
		ID:    "game-b",
		Title: "Beta",
		Price: decimal.RequireFromString("30"),
	}))

	u1 := domain.Actor{UserID: "user-1", Role: domain.UserRoleCustomer}
	u2 := domain.Actor{UserID: "user-2", Role: domain.UserRoleCustomer}
	_, err := f.service.Create(u1, domain.Review{UserID: "user-1", GameID: "game-a", Rating: 5})
	require.NoError(t, err)
	_, err = f.service.Create(u2, domain.Review{UserID: "user-2", GameID: "game-a", Rating: 3})
	require.NoError(t, err)
	_, err = f.service.Create(u1, domain.Review{UserID: "user-1", GameID: "game-b", Rating: 4})
	require.NoError(t, err)

	byGame, err := f.service.List(domain.ReviewFilter{GameID: "game-a"})
	require.NoError(t, err)
	assert.Len(t, byGame, 2)

	byUser, err := f.service.List(domain.ReviewFilter{UserID: "user-1"})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byRating, err := f.service.List(domain.ReviewFilter{GameID: "game-a", Rating: 5})
	require.NoError(t, err)
	require.Len(t, byRating, 1)
	assert.Equal(t, "user-1", byRating[0].UserID)
}
