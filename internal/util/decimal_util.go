package util

import (
	"github.com/shopspring/decimal"
)

// every monetary computation is rounded to the cent with banker's rounding
// before it is stored or compared
func ToDollarCents(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

func ToPercent(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(4)
}

// CeilCents rounds up to the next cent so a sale of the result always
// covers the amount asked for.
func CeilCents(d decimal.Decimal) decimal.Decimal {
	return d.Mul(decimal.NewFromInt(100)).Ceil().Div(decimal.NewFromInt(100))
}

func MaxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

func MinDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Clamp bounds d into [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	return MaxDecimal(lo, MinDecimal(d, hi))
}
