package domain

import "github.com/shopspring/decimal"

// Денежные суммы витрины считаются только в точной десятичной арифметике:
// binary floating point недопустим, иначе накапливается дрейф на уровне копеек.
// Валюта одна на всю витрину, поэтому сумма — это decimal.Decimal без обёртки.

// PercentOff применяет процентную скидку: total - round(total * percent / 100).
// Округление скидки — до целой денежной единицы, half-up.
func PercentOff(total, percent decimal.Decimal) decimal.Decimal {
	discount := total.Mul(percent.Div(decimal.NewFromInt(100))).Round(0)
	return total.Sub(discount)
}

// FixedOff применяет фиксированную скидку. Результат не опускается ниже нуля:
// промокод на сумму больше чека не делает заказ "отрицательным".
func FixedOff(total, amount decimal.Decimal) decimal.Decimal {
	result := total.Sub(amount)
	if result.IsNegative() {
		return decimal.Zero
	}
	return result
}

// FloorToUnit округляет сумму вниз до целой денежной единицы.
// Так сравниваются суммы при подтверждении оплаты.
func FloorToUnit(amount decimal.Decimal) decimal.Decimal {
	return amount.Floor()
}

// SameAmount сравнивает две суммы как десятичные значения (100 и 100.00 равны).
func SameAmount(a, b decimal.Decimal) bool {
	return a.Equal(b)
}
