package app

import (
	"testing"

	"mortgagesim/internal/domain"
	"mortgagesim/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func payingScenario() domain.Scenario {
	scenario := domain.DefaultScenario()
	scenario.HomeValue = decimal.NewFromInt(200000)
	scenario.StartingCash = decimal.Zero
	scenario.MonthlyIncome = decimal.NewFromInt(3000)
	scenario.MortgageTerm = domain.MortgageTerm_ThirtyYear
	scenario.MortgageInterestRate = dec("0.0768")
	scenario.OriginationFee = decimal.Zero
	return scenario.Clean()
}

func TestSimulation_initialize(t *testing.T) {
	marketData := flatMarketData(t, nil)
	start := domain.MustMonthYear(1, 1990)

	t.Run("standard amortization payment", func(t *testing.T) {
		for _, strategy := range domain.Strategies {
			s := NewSimulation(payingScenario(), strategy, marketData)
			require.NoError(t, s.initialize(start))

			require.NotNil(t, s.mortgage)
			require.True(t, s.mortgage.Payment.Sub(dec("1423.16")).Abs().LessThanOrEqual(dec("0.01")), s.mortgage.Payment.String())
			require.True(t, s.cash.IsZero(), s.cash.String())
		}
	})

	t.Run("avoid mortgage buys outright when cash covers the house", func(t *testing.T) {
		scenario := payingScenario()
		scenario.StartingCash = decimal.NewFromInt(250000)
		s := NewSimulation(scenario, domain.Strategy_AvoidMortgage, marketData)
		require.NoError(t, s.initialize(start))

		require.Nil(t, s.mortgage)
		require.Equal(t, "50000", s.cash.String())
	})

	t.Run("avoid mortgage borrows the shortfall", func(t *testing.T) {
		scenario := payingScenario()
		scenario.StartingCash = decimal.NewFromInt(50000)
		s := NewSimulation(scenario, domain.Strategy_AvoidMortgage, marketData)
		require.NoError(t, s.initialize(start))

		require.NotNil(t, s.mortgage)
		require.Equal(t, "150000", s.mortgage.Balance.String())
		require.True(t, s.cash.IsZero())
	})

	t.Run("invest always borrows the full value", func(t *testing.T) {
		scenario := payingScenario()
		scenario.StartingCash = decimal.NewFromInt(50000)
		s := NewSimulation(scenario, domain.Strategy_Invest, marketData)
		require.NoError(t, s.initialize(start))

		require.Equal(t, "200000", s.mortgage.Balance.String())
		require.Equal(t, "50000", s.cash.String())
	})

	t.Run("mortgage based income covers the payment", func(t *testing.T) {
		scenario := payingScenario()
		scenario.IncomeStrategy = domain.IncomeStrategy_MortgagePlus25Percent
		s := NewSimulation(scenario, domain.Strategy_Invest, marketData)
		require.NoError(t, s.initialize(start))

		want := s.mortgage.Payment.Mul(dec("1.25")).Round(2).Add(decimal.NewFromInt(1))
		require.True(t, want.Equal(s.monthlyIncome), s.monthlyIncome.String())
	})

	t.Run("cannot initialize twice", func(t *testing.T) {
		s := NewSimulation(payingScenario(), domain.Strategy_Invest, marketData)
		require.NoError(t, s.initialize(start))
		require.ErrorIs(t, s.initialize(start), domain.ErrSimulationState)
	})
}

func TestSimulation_Run(t *testing.T) {
	marketData := flatMarketData(t, nil)
	start := domain.MustMonthYear(1, 1990)

	t.Run("both strategies succeed", func(t *testing.T) {
		for _, strategy := range domain.Strategies {
			result, err := NewSimulation(payingScenario(), strategy, marketData).Run(testContext(), start)
			require.NoError(t, err)

			require.Equal(t, domain.Outcome_Success, result.Outcome, result.Error)
			require.Equal(t, 120, result.Months)
			require.Equal(t, "360000", result.Contributions.String())
			require.True(t, result.NetWorth.IsPositive())
			require.True(t, result.NetWorth.Sub(result.Contributions).Equal(result.NetGain))
			require.Equal(t, "0.0768", result.AverageMortgageRate.String())
			require.Equal(t, "0.0476", result.EffectiveMortgageRate.String())
		}
	})

	t.Run("avoid mortgage becomes secure once the house is paid", func(t *testing.T) {
		result, err := NewSimulation(payingScenario(), domain.Strategy_AvoidMortgage, marketData).Run(testContext(), start)
		require.NoError(t, err)
		require.NotNil(t, result.FirstSecure)
		require.Greater(t, result.SecureMonths, 0)
		require.LessOrEqual(t, result.SecureMonths, result.Months)
	})

	t.Run("income below the first payment is invalid", func(t *testing.T) {
		scenario := payingScenario()
		scenario.MonthlyIncome = decimal.NewFromInt(1000)

		result, err := NewSimulation(scenario, domain.Strategy_AvoidMortgage, marketData).Run(testContext(), start)
		require.NoError(t, err)
		require.Equal(t, domain.Outcome_Invalid, result.Outcome)
		require.Equal(t, 0, result.Months)
		require.NotEmpty(t, result.Error)
	})

	t.Run("missing mortgage rate is invalid", func(t *testing.T) {
		noRates := flatMarketData(t, func(m domain.MonthYear, row *repository.MarketDataRow) {
			if m == start {
				row.Mortgage30y = ""
			}
		})
		scenario := payingScenario()
		scenario.MortgageInterestRate = decimal.Zero

		result, err := NewSimulation(scenario, domain.Strategy_Invest, noRates).Run(testContext(), start)
		require.NoError(t, err)
		require.Equal(t, domain.Outcome_Invalid, result.Outcome)
	})

	t.Run("missing market data is a modeling error", func(t *testing.T) {
		noPrice := flatMarketData(t, func(m domain.MonthYear, row *repository.MarketDataRow) {
			if m == start.AddMonths(6) {
				row.Sp500Price = ""
			}
		})

		result, err := NewSimulation(payingScenario(), domain.Strategy_Invest, noPrice).Run(testContext(), start)
		require.ErrorIs(t, err, repository.ErrNoData)
		require.Equal(t, domain.Outcome_Error, result.Outcome)
	})

	t.Run("insolvency fails with a snapshot", func(t *testing.T) {
		scenario := payingScenario()
		scenario.StartingCash = decimal.NewFromInt(10000)
		scenario.MonthlyIncome = decimal.NewFromInt(500)

		result, err := NewSimulation(scenario, domain.Strategy_Invest, marketData).Run(testContext(), start)
		require.NoError(t, err)
		require.Equal(t, domain.Outcome_Failed, result.Outcome)
		require.NotNil(t, result.FailedAt)
		require.True(t, result.FailedAt.After(start))
		require.Contains(t, result.Status, "Net worth is")
	})

	t.Run("run is single use", func(t *testing.T) {
		s := NewSimulation(payingScenario(), domain.Strategy_Invest, marketData)
		_, err := s.Run(testContext(), start)
		require.NoError(t, err)

		result, err := s.Run(testContext(), start)
		require.ErrorIs(t, err, domain.ErrSimulationState)
		require.Equal(t, domain.Outcome_Error, result.Outcome)
	})

	t.Run("inflation adjusted runs report baseline dollars", func(t *testing.T) {
		scenario := payingScenario()
		scenario.InflationAdjust = true
		scenario.StartingCash = decimal.NewFromInt(20000)

		result, err := NewSimulation(scenario, domain.Strategy_AvoidMortgage, marketData).Run(testContext(), start)
		require.NoError(t, err)
		require.Equal(t, domain.Outcome_Success, result.Outcome, result.Error)
		// income is nominal so its baseline value exceeds 120 * 3000
		require.True(t, result.Contributions.GreaterThan(decimal.NewFromInt(380000)), result.Contributions.String())
	})
}
