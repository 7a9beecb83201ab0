package domain

import (
	"fmt"

	"mortgagesim/internal/util"

	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// StockLot is a single purchase of an S&P 500 index position. Fractional
// shares are allowed, much like a mutual fund.
type StockLot struct {
	Shares     decimal.Decimal
	BasisPrice decimal.Decimal
}

func NewStockLot(amount, price decimal.Decimal) *StockLot {
	return &StockLot{
		Shares:     amount.Div(price),
		BasisPrice: price,
	}
}

func (s StockLot) Value(price decimal.Decimal) decimal.Decimal {
	return util.ToDollarCents(s.Shares.Mul(price))
}

func (s StockLot) Basis() decimal.Decimal {
	return util.ToDollarCents(s.Shares.Mul(s.BasisPrice))
}

func (s StockLot) Gain(price decimal.Decimal) decimal.Decimal {
	return s.Value(price).Sub(s.Basis())
}

func (s StockLot) String() string {
	return fmt.Sprintf("%s shares @ $%s", s.Shares.StringFixed(2), s.BasisPrice.StringFixed(2))
}

// BondLot is a single purchase of a one year discount treasury. Any dollar
// amount may be bought, not just multiples of 100.
type BondLot struct {
	Par                 decimal.Decimal
	Purchase            decimal.Decimal
	InitialInterestRate decimal.Decimal
	Maturity            MonthYear
}

// NewBondLot buys amount of a bond maturing one year from now. Par is kept
// unrounded so par > purchase holds for any positive rate.
func NewBondLot(amount, rate decimal.Decimal, now MonthYear) *BondLot {
	return &BondLot{
		Par:                 FutureValue(amount, rate),
		Purchase:            amount,
		InitialInterestRate: rate,
		Maturity:            now.AddYears(1),
	}
}

func (b BondLot) IsMatured(now MonthYear) bool {
	return !now.Before(b.Maturity)
}

// FaceValue is what the lot would fetch at marketRate in month now. The
// discount shrinks linearly with the months left to maturity.
func (b BondLot) FaceValue(now MonthYear, marketRate decimal.Decimal) decimal.Decimal {
	if b.IsMatured(now) {
		return util.ToDollarCents(b.Par)
	}
	months := decimal.NewFromInt(int64(MonthDifference(b.Maturity, now)))
	discount := marketRate.Div(twelve).Mul(months).Div(twelve)
	return util.ToDollarCents(b.Par.Mul(decimal.NewFromInt(1).Sub(discount)))
}

// Scale keeps fraction of the lot, shrinking par and purchase together.
func (b *BondLot) Scale(fraction decimal.Decimal) {
	b.Par = b.Par.Mul(fraction)
	b.Purchase = b.Purchase.Mul(fraction)
}

func (b BondLot) Valid() bool {
	if b.InitialInterestRate.LessThanOrEqual(decimal.Zero) {
		return b.Par.GreaterThanOrEqual(b.Purchase)
	}
	return b.Par.GreaterThan(b.Purchase)
}

func (b BondLot) String() string {
	return fmt.Sprintf(
		"$%s bond maturing %s; $%s price with %s%% interest",
		b.Par.StringFixed(0),
		b.Maturity,
		b.Purchase.StringFixed(0),
		b.InitialInterestRate.Mul(decimal.NewFromInt(100)).StringFixed(2),
	)
}

func FutureValue(presentValue, rate decimal.Decimal) decimal.Decimal {
	return presentValue.Div(decimal.NewFromInt(1).Sub(rate.Div(twelve)))
}

func PresentValue(futureValue, rate decimal.Decimal) decimal.Decimal {
	return futureValue.Mul(decimal.NewFromInt(1).Sub(rate.Div(twelve)))
}
