package app

import (
	"context"
	"testing"

	"mortgagesim/internal/domain"
	"mortgagesim/internal/logger"
	"mortgagesim/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flatMarketData returns every series at a constant value across the whole
// supported window. edit may override individual months.
func flatMarketData(t *testing.T, edit func(m domain.MonthYear, row *repository.MarketDataRow)) repository.MarketDataRepository {
	t.Helper()

	rows := []repository.MarketDataRow{}
	for m := domain.MinMonthYear.AddYears(-1); !m.After(domain.MaxMonthYear.AddYears(1)); m = m.AddMonths(1) {
		row := repository.MarketDataRow{
			Date:          m.Key(),
			Mortgage15y:   "0.07",
			Mortgage30y:   "0.0768",
			Treasury1y:    "0.05",
			Sp500Price:    "100",
			Sp500Dividend: "0.02",
			Inflation:     "0.002",
		}
		if edit != nil {
			edit(m, &row)
		}
		rows = append(rows, row)
	}

	repo, err := repository.NewMarketDataRepository(rows)
	require.NoError(t, err)
	return repo
}

func testContext() context.Context {
	return logger.WithContext(context.Background(), zap.NewNop().Sugar())
}

// newTestSimulation returns a simulation that is ready to step without
// going through initialize.
func newTestSimulation(t *testing.T, scenario domain.Scenario, strategy domain.Strategy, marketData repository.MarketDataRepository) *Simulation {
	t.Helper()
	s := NewSimulation(scenario.Clean(), strategy, marketData)
	s.state = stateRunning
	return s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
