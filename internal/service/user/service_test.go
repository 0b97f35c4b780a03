package user

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamestorelab/gamestore/internal/domain"
	"github.com/gamestorelab/gamestore/internal/storage/memory"
)

type fixture struct {
	users   domain.UserRepository
	carts   domain.CartRepository
	service *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users: memory.NewUserRepository(),
		carts: memory.NewCartRepository(memory.NewGameRepository()),
	}
	f.service = NewService(f.users, f.carts, log.New().WithField("component", "user"))
	return f
}

func TestRegisterCreatesCart(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.Register(domain.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.UserRoleCustomer, created.Role)

	// Корзина появляется сразу при регистрации.
	cart, err := f.carts.GetByUser(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, cart.UserID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Register(domain.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = f.service.Register(domain.User{Username: "alice", Email: "alice2@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Register(domain.User{Username: "alice"})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}

func TestGetScopedToOwner(t *testing.T) {
	f := newFixture(t)
	created, err := f.service.Register(domain.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	owner := domain.Actor{UserID: created.ID, Role: domain.UserRoleCustomer}
	got, err := f.service.Get(owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	stranger := domain.Actor{UserID: "user-2", Role: domain.UserRoleCustomer}
	_, err = f.service.Get(stranger, created.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestUpdateContactFields(t *testing.T) {
	f := newFixture(t)
	created, err := f.service.Register(domain.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	owner := domain.Actor{UserID: created.ID, Role: domain.UserRoleCustomer}

	phone := "+1-555-0100"
	updated, err := f.service.Update(owner, created.ID, UpdateInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "alice@example.com", updated.Email)
}

func TestUpdateRoleAdminOnly(t *testing.T) {
	f := newFixture(t)
	created, err := f.service.Register(domain.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	role := domain.UserRoleAdmin
	owner := domain.Actor{UserID: created.ID, Role: domain.UserRoleCustomer}
	_, err = f.service.Update(owner, created.ID, UpdateInput{Role: &role})
	assert.ErrorIs(t, err, domain.ErrAdminOnly)

	admin := domain.Actor{UserID: "root", Role: domain.UserRoleAdmin}
	updated, err := f.service.Update(admin, created.ID, UpdateInput{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, updated.Role)
}

func TestListAndDeleteAdminOnly(t *testing.T) {
	f := newFixture(t)
	created, err := f.service.Register(domain.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	customer := domain.Actor{UserID: created.ID, Role: domain.UserRoleCustomer}
	_, err = f.service.List(customer, 10, 0)
	assert.ErrorIs(t, err, domain.ErrAdminOnly)

	admin := domain.Actor{UserID: "root", Role: domain.UserRoleAdmin}
	users, err := f.service.List(admin, 10, 0)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	assert.ErrorIs(t, f.service.Delete(customer, created.ID), domain.ErrAdminOnly)
	require.NoError(t, f.service.Delete(admin, created.ID))
	_, err = f.users.Get(created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
