package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestScenario_Clean(t *testing.T) {
	t.Run("defaults are already clean", func(t *testing.T) {
		s := DefaultScenario()
		clean := s.Clean()
		require.Equal(t, s.Start, clean.Start)
		require.Equal(t, s.SimulationYears, clean.SimulationYears)
		require.True(t, s.StockPercentage.Equal(clean.StockPercentage))
	})

	t.Run("clamps out of range values", func(t *testing.T) {
		s := Scenario{
			Start:                  MustMonthYear(1, 2030),
			End:                    MustMonthYear(1, 1950),
			HomeValue:              decimal.NewFromInt(-5),
			StockPercentage:        decimal.RequireFromString("1.2"),
			MarginalTaxRate:        decimal.RequireFromString("-0.1"),
			RebalanceMonths:        -3,
			RefinancePayBackMonths: 0,
			MortgageTerm:           "40y",
			IncomeStrategy:         "lottery",
		}
		clean := s.Clean()

		require.Equal(t, MinMonthYear, clean.Start)
		require.Equal(t, MaxMonthYear, clean.End)
		require.Equal(t, 1, clean.SimulationYears)
		require.True(t, clean.HomeValue.IsZero())
		require.True(t, clean.StockPercentage.Equal(decimal.NewFromInt(1)))
		require.True(t, clean.MarginalTaxRate.IsZero())
		require.Equal(t, 0, clean.RebalanceMonths)
		require.Equal(t, 1, clean.RefinancePayBackMonths)
		require.Equal(t, MortgageTerm_ThirtyYear, clean.MortgageTerm)
		require.Equal(t, IncomeStrategy_Fixed, clean.IncomeStrategy)
	})
}

func TestScenario_Fingerprint(t *testing.T) {
	a, err := DefaultScenario().Fingerprint()
	require.NoError(t, err)
	b, err := DefaultScenario().Fingerprint()
	require.NoError(t, err)
	require.Equal(t, a, b)

	changed := DefaultScenario()
	changed.HomeValue = decimal.NewFromInt(300000)
	c, err := changed.Fingerprint()
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestIncomeStrategy(t *testing.T) {
	require.True(t, IncomeStrategy_MortgagePlus50Percent.IsMortgageBased())
	require.False(t, IncomeStrategy_FixedInflationAdjusted.IsMortgageBased())
	require.False(t, IncomeStrategy("other").Valid())
}
