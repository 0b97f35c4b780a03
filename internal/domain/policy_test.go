package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActorCanAccess(t *testing.T) {
	admin := Actor{UserID: "admin-1", Role: UserRoleAdmin}
	customer := Actor{UserID: "user-1", Role: UserRoleCustomer}

	assert.True(t, admin.CanAccess("someone-else"))
	assert.True(t, customer.CanAccess("user-1"))
	assert.False(t, customer.CanAccess("user-2"))

	// Пустой идентификатор не совпадает ни с чем.
	anonymous := Actor{Role: UserRoleCustomer}
	assert.False(t, anonymous.CanAccess(""))
}

func TestRequireOwner(t *testing.T) {
	customer := Actor{UserID: "user-1", Role: UserRoleCustomer}
	assert.NoError(t, RequireOwner(customer, "user-1"))
	assert.ErrorIs(t, RequireOwner(customer, "user-2"), ErrAccessDenied)
}

func TestRequireAdmin(t *testing.T) {
	admin := Actor{UserID: "admin-1", Role: UserRoleAdmin}
	customer := Actor{UserID: "user-1", Role: UserRoleCustomer}

	assert.NoError(t, RequireAdmin(admin))
	assert.ErrorIs(t, RequireAdmin(customer), ErrAdminOnly)
}
