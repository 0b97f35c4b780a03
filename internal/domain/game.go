package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game — позиция каталога. Цены хранятся точными десятичными значениями;
// discount_price, если задана, перекрывает базовую цену на витрине и в чекауте.
type Game struct {
	ID            string
	Title         string
	Description   string
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	Developer     string
	Publisher     string
	ReleaseDate   *time.Time
	IsHot         bool
	Genres        []Genre
	Platforms     []Platform
	Images        []GameImage
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EffectiveUnitPrice возвращает действующую цену: discount_price ?? price.
func (g *Game) EffectiveUnitPrice() decimal.Decimal {
	if g.DiscountPrice != nil {
		return *g.DiscountPrice
	}
	return g.Price
}

// Validate проверяет инварианты позиции каталога.
func (g *Game) Validate() []error {
	var errs []error

	if g.Title == "" {
		errs = append(errs, ErrTitleRequired)
	}
	if g.Price.IsNegative() {
		errs = append(errs, ErrPriceNegative)
	}
	if g.DiscountPrice != nil {
		if g.DiscountPrice.IsNegative() {
			errs = append(errs, ErrPriceNegative)
		} else if g.DiscountPrice.GreaterThan(g.Price) {
			errs = append(errs, ErrDiscountAbovePrice)
		}
	}

	return errs
}

// Genre — жанр каталога.
type Genre struct {
	ID          string
	Name        string
	Description string
}

// Platform — игровая платформа.
type Platform struct {
	ID          string
	Name        string
	Description string
}

// GameImage — изображение игры; позиция с OrderIndex=1 служит обложкой.
type GameImage struct {
	ID         string
	GameID     string
	URL        string
	AltText    string
	OrderIndex int
}

// Thumbnail возвращает URL обложки или пустую строку, если изображений нет.
func (g *Game) Thumbnail() string {
	for _, img := range g.Images {
		if img.OrderIndex == 1 {
			return img.URL
		}
	}
	if len(g.Images) > 0 {
		return g.Images[0].URL
	}
	return ""
}
