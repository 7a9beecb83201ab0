package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTaxes_Owed(t *testing.T) {
	scenario := DefaultScenario()
	taxes := &Taxes{
		MortgageInterest: decimal.NewFromInt(10000),
		Dividends:        decimal.NewFromInt(1000),
		CapitalGains:     decimal.NewFromInt(-2000),
		TreasuryInterest: decimal.NewFromInt(500),
	}

	// 1000 * .15 + 500 * .32, losses do not offset
	require.Equal(t, "310", taxes.Owed(scenario).String())
	require.Equal(t, "3800", taxes.MortgageInterestDeduction(scenario).String())

	scenario.AllowMortgageInterestDeduction = false
	require.True(t, taxes.MortgageInterestDeduction(scenario).IsZero())
}

func TestTaxes_CarryLossesInto(t *testing.T) {
	previous := &Taxes{
		Dividends:        decimal.NewFromInt(100),
		CapitalGains:     decimal.NewFromInt(-2000),
		TreasuryInterest: decimal.NewFromInt(-5),
	}
	current := NewTaxes()
	current.CapitalGains = decimal.NewFromInt(500)

	previous.CarryLossesInto(current)

	require.Equal(t, "-1500", current.CapitalGains.String())
	require.Equal(t, "-5", current.TreasuryInterest.String())
	require.True(t, current.Dividends.IsZero())
	require.True(t, previous.CapitalGains.IsZero())
	require.Equal(t, "100", previous.Dividends.String())
}

func TestTaxes_IsEmpty(t *testing.T) {
	taxes := NewTaxes()
	require.True(t, taxes.IsEmpty())
	require.Empty(t, taxes.String())

	taxes.Dividends = decimal.NewFromInt(12)
	require.False(t, taxes.IsEmpty())
	require.Equal(t, "Dividends of $12", taxes.String())
}
