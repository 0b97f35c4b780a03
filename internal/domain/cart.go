package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart — корзина пользователя, ровно одна на учётную запись.
// Чекаут корзину не удаляет, он выгребает только потреблённые позиции.
type Cart struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// CartItem — одна игра, ожидающая покупки. Пара (корзина, игра) уникальна.
type CartItem struct {
	ID        string
	CartID    string
	GameID    string
	CreatedAt time.Time
}

// CartLine — строка снапшота корзины с актуальными ценами каталога.
type CartLine struct {
	CartItemID    string
	GameID        string
	Title         string
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
}

// EffectiveUnitPrice возвращает действующую цену строки: discount_price ?? price.
func (l CartLine) EffectiveUnitPrice() decimal.Decimal {
	if l.DiscountPrice != nil {
		return *l.DiscountPrice
	}
	return l.Price
}

// CartSnapshot — корзина с позициями, снятая одним чтением перед чекаутом.
// Цены каталога после снятия снапшота не перечитываются.
type CartSnapshot struct {
	CartID string
	UserID string
	Lines  []CartLine
}

// Line возвращает строку снапшота по идентификатору игры.
func (s CartSnapshot) Line(gameID string) (CartLine, bool) {
	for _, line := range s.Lines {
		if line.GameID == gameID {
			return line, true
		}
	}
	return CartLine{}, false
}
