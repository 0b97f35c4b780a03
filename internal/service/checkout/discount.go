package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gamestorelab/gamestore/internal/domain"
)

// validatePromotion возвращает условия скидки для переданного кода.
// Пустой код означает "промокод не запрошен" и возвращает nil-условия.
// Проверка минимальной суммы сюда не входит — она выполняется в applyDiscount,
// когда известен фактический subtotal.
func (s *Service) validatePromotion(code string) (*domain.DiscountTerms, error) {
	if code == "" {
		return nil, nil
	}

	promotion, err := s.promotions.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if err := promotion.EnsureUsableAt(time.Now().UTC()); err != nil {
		return nil, err
	}

	terms := promotion.Terms()
	return &terms, nil
}

// applyDiscount считает итог со скидкой. Без условий subtotal возвращается
// без изменений; с условиями сначала проверяется минимальная сумма заказа.
func applyDiscount(subtotal decimal.Decimal, terms *domain.DiscountTerms) (decimal.Decimal, error) {
	if terms == nil {
		return subtotal, nil
	}
	return terms.Apply(subtotal)
}
