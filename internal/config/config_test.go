package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mortgagesim/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		require.Equal(t, 1, cfg.Concurrency)
		require.Equal(t, 168*time.Hour, cfg.CacheTTL)
		require.Equal(t, "data/market_data.csv", cfg.DataPath)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("MORTGAGESIM_CONCURRENCY", "8")
		t.Setenv("MORTGAGESIM_REDIS_ADDR", "localhost:6379")
		t.Setenv("MORTGAGESIM_VERBOSE", "true")

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		require.Equal(t, 8, cfg.Concurrency)
		require.Equal(t, "localhost:6379", cfg.RedisAddr)
		require.True(t, cfg.Verbose)
	})

	t.Run("env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("MORTGAGESIM_OUTPUT=results.csv\n"), 0o600))
		t.Setenv("MORTGAGESIM_OUTPUT", "")
		os.Unsetenv("MORTGAGESIM_OUTPUT")

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "results.csv", cfg.OutputPath)
	})

	t.Run("bad value", func(t *testing.T) {
		t.Setenv("MORTGAGESIM_CONCURRENCY", "many")
		_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		require.Error(t, err)
	})
}

func TestParseScenario(t *testing.T) {
	t.Run("empty document is the default", func(t *testing.T) {
		scenario, err := ParseScenario(nil)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(domain.DefaultScenario().Clean(), scenario))
	})

	t.Run("overrides merge over defaults", func(t *testing.T) {
		scenario, err := ParseScenario([]byte(`
start:
  month: 1
  year: 1980
home_value: 300000
mortgage_term: 15y
stock_percentage: 0.6
allow_refinance: false
`))
		require.NoError(t, err)
		require.Equal(t, domain.MustMonthYear(1, 1980), scenario.Start)
		require.Equal(t, domain.MaxMonthYear, scenario.End)
		require.Equal(t, "300000", scenario.HomeValue.String())
		require.Equal(t, domain.MortgageTerm_FifteenYear, scenario.MortgageTerm)
		require.Equal(t, "0.6", scenario.StockPercentage.String())
		require.False(t, scenario.AllowRefinance)
		require.Equal(t, "200000", scenario.StartingCash.String())
	})

	t.Run("values are cleaned", func(t *testing.T) {
		scenario, err := ParseScenario([]byte("stock_percentage: 1.5\nminimum_cash: -10\nsimulation_years: 0\n"))
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(1).Equal(scenario.StockPercentage))
		require.True(t, scenario.MinimumCash.IsZero())
		require.Equal(t, 1, scenario.SimulationYears)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		_, err := ParseScenario([]byte("home_price: 1\n"))
		require.Error(t, err)
	})

	t.Run("marshalled scenario parses back", func(t *testing.T) {
		b, err := MarshalScenario(domain.DefaultScenario())
		require.NoError(t, err)
		scenario, err := ParseScenario(b)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(domain.DefaultScenario().Clean(), scenario))
	})
}
