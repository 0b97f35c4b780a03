package domain

// Actor — аутентифицированный субъект запроса. Идентификатор и роль поставляет
// внешний identity-компонент, витрина доверяет им без повторной проверки.
type Actor struct {
	UserID string
	Role   UserRole
}

// IsAdmin сообщает, действует ли актор с правами администратора.
func (a Actor) IsAdmin() bool {
	return a.Role == UserRoleAdmin
}

// CanAccess решает, разрешён ли доступ к ресурсу с владельцем ownerID:
// администратор видит всё, покупатель — только своё. Единая точка принятия
// решения вместо рассыпанных по сервисам ролевых веток.
func (a Actor) CanAccess(ownerID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.UserID != "" && a.UserID == ownerID
}

// RequireOwner возвращает ErrAccessDenied, если актор не владелец и не админ.
func RequireOwner(actor Actor, ownerID string) error {
	if !actor.CanAccess(ownerID) {
		return ErrAccessDenied
	}
	return nil
}

// RequireAdmin возвращает ErrAdminOnly для всех, кроме администратора.
func RequireAdmin(actor Actor) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}
