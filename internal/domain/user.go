package domain

import "time"

// UserRole описывает роль пользователя витрины.
type UserRole string

const (
	// UserRoleAdmin — администратор: управляет каталогом, заказами и промоакциями.
	UserRoleAdmin UserRole = "ADMIN"
	// UserRoleCustomer — покупатель: действует только со своими ресурсами.
	UserRoleCustomer UserRole = "CUSTOMER"
)

// Valid проверяет, что роль относится к поддерживаемым значениям.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleCustomer:
		return true
	default:
		return false
	}
}

// User — учётная запись витрины. Пароли и сессии живут в identity-компоненте,
// сюда попадает уже аутентифицированный профиль.
type User struct {
	ID        string
	Username  string
	Email     string
	Role      UserRole
	Address   string
	Phone     string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет базовые инварианты профиля и возвращает список замечаний.
func (u *User) Validate() []error {
	var errs []error

	if u.Username == "" {
		errs = append(errs, ErrUsernameRequired)
	}
	if u.Email == "" {
		errs = append(errs, ErrEmailRequired)
	}
	if !u.Role.Valid() {
		errs = append(errs, ErrRoleInvalid)
	}

	return errs
}
