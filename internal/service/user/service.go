// Package user управляет профилями учётных записей. Пароли, сессии и выдача
// токенов живут во внешнем identity-компоненте.
package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/gamestorelab/gamestore/internal/domain"
)

// Service реализует операции над профилями.
type Service struct {
	users  domain.UserRepository
	carts  domain.CartRepository
	logger *log.Entry
}

// NewService создаёт сервис профилей.
func NewService(users domain.UserRepository, carts domain.CartRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "user")
	}
	return &Service{users: users, carts: carts, logger: logger}
}

// Register заводит профиль после завершения регистрации в identity-компоненте
// и сразу создаёт пользователю пустую корзину.
func (s *Service) Register(user domain.User) (domain.User, error) {
	if user.Role == "" {
		user.Role = domain.UserRoleCustomer
	}
	if errs := user.Validate(); len(errs) > 0 {
		return domain.User{}, domain.WrapError(domain.KindInvalidInput, "invalid user", errors.Join(errs...))
	}

	now := time.Now().UTC()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.users.Create(user); err != nil {
		return domain.User{}, err
	}
	if _, err := s.carts.EnsureForUser(user.ID); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("create cart for new user failed")
	}

	s.logger.WithField("username", user.Username).Info("user registered")
	return user, nil
}

// Get возвращает профиль: свой или любой для администратора.
func (s *Service) Get(actor domain.Actor, id string) (domain.User, error) {
	if err := domain.RequireOwner(actor, id); err != nil {
		return domain.User{}, err
	}
	return s.users.Get(id)
}

// List возвращает пользователей постранично. Только для администратора.
func (s *Service) List(actor domain.Actor, limit, offset int) ([]domain.User, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.users.List(limit, offset)
}

// UpdateInput описывает изменяемые поля профиля.
type UpdateInput struct {
	Email     *string
	Address   *string
	Phone     *string
	AvatarURL *string
	// Role может менять только администратор.
	Role *domain.UserRole
}

// Update меняет профиль: владелец — контактные поля, администратор — ещё и роль.
func (s *Service) Update(actor domain.Actor, id string, input UpdateInput) (domain.User, error) {
	if err := domain.RequireOwner(actor, id); err != nil {
		return domain.User{}, err
	}

	user, err := s.users.Get(id)
	if err != nil {
		return domain.User{}, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.Role != nil {
		if err := domain.RequireAdmin(actor); err != nil {
			return domain.User{}, err
		}
		user.Role = *input.Role
	}

	if errs := user.Validate(); len(errs) > 0 {
		return domain.User{}, domain.WrapError(domain.KindInvalidInput, "invalid user", errors.Join(errs...))
	}
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Delete удаляет учётную запись. Только для администратора.
func (s *Service) Delete(actor domain.Actor, id string) error {
	if err := domain.RequireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.users.Get(id); err != nil {
		return err
	}
	return s.users.Delete(id)
}
