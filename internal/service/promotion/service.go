// Package promotion управляет промоакциями и витринной проверкой промокодов.
package promotion

import (
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/gamestorelab/gamestore/internal/domain"
)

// Service реализует административное управление промоакциями и read-only
// классификацию кода для UI. Enforcement-проверка при чекауте живёт в движке
// чекаута, здесь её нет.
type Service struct {
	promotions domain.PromotionRepository
	logger     *log.Entry
}

// NewService создаёт сервис промоакций.
func NewService(promotions domain.PromotionRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "promotion")
	}
	return &Service{promotions: promotions, logger: logger}
}

// Create сохраняет новую промоакцию. Только для администратора.
func (s *Service) Create(actor domain.Actor, promo domain.Promotion) (domain.Promotion, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return domain.Promotion{}, err
	}

	if errs := promo.Validate(); len(errs) > 0 {
		return domain.Promotion{}, domain.WrapError(domain.KindInvalidInput, "invalid promotion", errors.Join(errs...))
	}

	now := time.Now().UTC()
	promo.ID = uuid.NewString()
	promo.CreatedAt = now
	promo.UpdatedAt = now

	if err := s.promotions.Create(promo); err != nil {
		return domain.Promotion{}, err
	}

	s.logger.WithField("code", promo.Code).Info("promotion created")
	return promo, nil
}

// Get возвращает промоакцию по идентификатору.
func (s *Service) Get(id string) (domain.Promotion, error) {
	return s.promotions.Get(id)
}

// List возвращает все промоакции.
func (s *Service) List() ([]domain.Promotion, error) {
	return s.promotions.List()
}

// Update перезаписывает поля промоакции. Только для администратора.
func (s *Service) Update(actor domain.Actor, promo domain.Promotion) (domain.Promotion, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return domain.Promotion{}, err
	}

	current, err := s.promotions.Get(promo.ID)
	if err != nil {
		return domain.Promotion{}, err
	}

	if errs := promo.Validate(); len(errs) > 0 {
		return domain.Promotion{}, domain.WrapError(domain.KindInvalidInput, "invalid promotion", errors.Join(errs...))
	}

	promo.CreatedAt = current.CreatedAt
	promo.UpdatedAt = time.Now().UTC()
	if err := s.promotions.Update(promo); err != nil {
		return domain.Promotion{}, err
	}
	return promo, nil
}

// Delete удаляет промоакцию. Только для администратора.
func (s *Service) Delete(actor domain.Actor, id string) error {
	if err := domain.RequireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.promotions.Get(id); err != nil {
		return err
	}
	return s.promotions.Delete(id)
}

// CodeCheck — витринный ответ на вопрос "можно ли использовать этот код".
type CodeCheck struct {
	Promotion domain.Promotion
	Status    domain.PromotionStatus
}

// CheckCode классифицирует промокод, ничего не изменяя. В отличие от
// enforcement-пути минимальная сумма здесь не проверяется: subtotal ещё не известен.
func (s *Service) CheckCode(code string) (CodeCheck, error) {
	promotion, err := s.promotions.GetByCode(code)
	if err != nil {
		return CodeCheck{}, err
	}

	return CodeCheck{
		Promotion: promotion,
		Status:    promotion.StatusAt(time.Now().UTC()),
	}, nil
}
