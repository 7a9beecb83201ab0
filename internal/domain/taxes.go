package domain

import (
	"fmt"
	"strings"

	"mortgagesim/internal/util"

	"github.com/shopspring/decimal"
)

// Taxes accumulates one calendar year of taxable events.
type Taxes struct {
	// only used to value the mortgage interest deduction
	MortgageInterest decimal.Decimal
	Dividends        decimal.Decimal
	CapitalGains     decimal.Decimal
	TreasuryInterest decimal.Decimal
}

func NewTaxes() *Taxes {
	return &Taxes{
		MortgageInterest: decimal.Zero,
		Dividends:        decimal.Zero,
		CapitalGains:     decimal.Zero,
		TreasuryInterest: decimal.Zero,
	}
}

// Owed is the tax due on the positive categories. Losses never reduce
// another category.
func (t Taxes) Owed(s Scenario) decimal.Decimal {
	zero := decimal.Zero
	owed := util.MaxDecimal(t.Dividends, zero).Mul(s.DividendTaxRate).
		Add(util.MaxDecimal(t.CapitalGains, zero).Mul(s.CapitalGainsTaxRate)).
		Add(util.MaxDecimal(t.TreasuryInterest, zero).Mul(s.TreasuryInterestTaxRate))
	return util.ToDollarCents(owed)
}

// MortgageInterestDeduction is the cash value of deducting this year's
// mortgage interest at the marginal rate.
func (t Taxes) MortgageInterestDeduction(s Scenario) decimal.Decimal {
	if !s.AllowMortgageInterestDeduction || !t.MortgageInterest.IsPositive() {
		return decimal.Zero
	}
	return util.ToDollarCents(t.MortgageInterest.Mul(s.MarginalTaxRate))
}

// CarryLossesInto moves every negative category into next and zeroes it here.
func (t *Taxes) CarryLossesInto(next *Taxes) {
	if t.Dividends.IsNegative() {
		next.Dividends = next.Dividends.Add(t.Dividends)
		t.Dividends = decimal.Zero
	}
	if t.CapitalGains.IsNegative() {
		next.CapitalGains = next.CapitalGains.Add(t.CapitalGains)
		t.CapitalGains = decimal.Zero
	}
	if t.TreasuryInterest.IsNegative() {
		next.TreasuryInterest = next.TreasuryInterest.Add(t.TreasuryInterest)
		t.TreasuryInterest = decimal.Zero
	}
}

func (t Taxes) IsEmpty() bool {
	return t.MortgageInterest.IsZero() &&
		t.Dividends.IsZero() &&
		t.CapitalGains.IsZero() &&
		t.TreasuryInterest.IsZero()
}

func (t Taxes) String() string {
	lines := []string{}
	add := func(name string, d decimal.Decimal) {
		if !d.IsZero() {
			lines = append(lines, fmt.Sprintf("%s of $%s", name, d.StringFixed(0)))
		}
	}
	add("Mortgage interest", t.MortgageInterest)
	add("Dividends", t.Dividends)
	add("Capital gains", t.CapitalGains)
	add("Treasury interest", t.TreasuryInterest)
	return strings.Join(lines, "\n")
}
