package domain

import (
	"fmt"
	"math"

	"mortgagesim/internal/util"

	"github.com/shopspring/decimal"
)

type MortgageTerm string

const (
	MortgageTerm_FifteenYear MortgageTerm = "15y"
	MortgageTerm_ThirtyYear  MortgageTerm = "30y"
)

func (t MortgageTerm) Years() int {
	switch t {
	case MortgageTerm_FifteenYear:
		return 15
	default:
		return 30
	}
}

func (t MortgageTerm) Valid() bool {
	return t == MortgageTerm_FifteenYear || t == MortgageTerm_ThirtyYear
}

// Mortgage is an amortizing loan. Amount includes any financed
// origination cost; Proceeds is what was actually disbursed.
type Mortgage struct {
	Amount       decimal.Decimal
	Balance      decimal.Decimal
	Years        int
	InterestRate decimal.Decimal
	Payment      decimal.Decimal
	Proceeds     decimal.Decimal
}

// NewMortgage finances amount plus origination at rate over years.
func NewMortgage(amount, rate, originationFee decimal.Decimal, years int) *Mortgage {
	origination := util.ToDollarCents(amount.Mul(util.MaxDecimal(decimal.Zero, originationFee)))
	principal := amount.Add(origination)
	return &Mortgage{
		Amount:       principal,
		Balance:      principal,
		Years:        years,
		InterestRate: rate,
		Payment:      CalculatePayment(principal, rate, years),
		Proceeds:     amount,
	}
}

func (m Mortgage) Origination() decimal.Decimal {
	return m.Amount.Sub(m.Proceeds)
}

// MonthlyInterest is the interest accrued on the current balance for one month.
func (m Mortgage) MonthlyInterest() decimal.Decimal {
	return util.ToDollarCents(m.Balance.Mul(m.InterestRate).Div(decimal.NewFromInt(12)))
}

func (m Mortgage) String() string {
	return fmt.Sprintf(
		"%d year mortgage for $%s @ %s%%; $%s payment; $%s balance",
		m.Years,
		m.Amount.StringFixed(0),
		m.InterestRate.Mul(decimal.NewFromInt(100)).StringFixed(2),
		m.Payment.StringFixed(2),
		m.Balance.StringFixed(2),
	)
}

// CalculatePayment returns the level monthly payment rounded to the cent.
// A zero rate yields amount / years * 12, which is kept as-is for parity
// with historical runs even though it does not amortize.
func CalculatePayment(amount, annualRate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return decimal.Zero
	}
	if annualRate.LessThanOrEqual(decimal.Zero) {
		return util.ToDollarCents(amount.Div(decimal.NewFromInt(int64(years))).Mul(decimal.NewFromInt(12)))
	}

	rate := annualRate.InexactFloat64() / 12
	factor := rate + rate/(math.Pow(1+rate, float64(years*12))-1)
	return util.ToDollarCents(amount.Mul(decimal.NewFromFloat(factor)))
}
