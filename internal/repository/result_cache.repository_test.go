package repository

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"mortgagesim/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestResultCacheKey(t *testing.T) {
	key := ResultCacheKey("abc123", "def456", domain.Strategy_Invest, domain.MustMonthYear(4, 1972))
	require.Equal(t, "mortgagesim:abc123:def456:invest:1972-04", key)
}

func TestMemoryResultCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryResultCache()

	got, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, got)

	result := domain.Result{
		Start:    domain.MustMonthYear(1, 1990),
		Strategy: domain.Strategy_AvoidMortgage,
		Outcome:  domain.Outcome_Success,
		NetWorth: decimal.NewFromInt(250000),
		Months:   120,
	}
	require.NoError(t, cache.Set(ctx, "k", result))

	got, err = cache.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "", cmp.Diff(result, *got))
}

func TestWriteResultsCsv(t *testing.T) {
	start := domain.MustMonthYear(1, 1990)
	failedAt := domain.MustMonthYear(6, 1992)

	invest := domain.NewResults(uuid.New(), domain.Strategy_Invest, start, start.AddMonths(1))
	invest.Add(domain.Result{
		Start:         start.AddMonths(1),
		Strategy:      domain.Strategy_Invest,
		Outcome:       domain.Outcome_Failed,
		FailedAt:      &failedAt,
		Error:         "unable to make mortgage payment of $1423.16",
		Months:        29,
		NetWorth:      decimal.Zero,
		Contributions: decimal.Zero,
		NetGain:       decimal.Zero,
	})
	invest.Add(domain.Result{
		Start:                 start,
		Strategy:              domain.Strategy_Invest,
		Outcome:               domain.Outcome_Success,
		NetWorth:              decimal.RequireFromString("412345.67"),
		Contributions:         decimal.NewFromInt(380000),
		NetGain:               decimal.RequireFromString("32345.67"),
		Months:                120,
		SecureMonths:          60,
		AverageMortgageRate:   decimal.RequireFromString("0.1013"),
		EffectiveMortgageRate: decimal.RequireFromString("0.0628"),
	})

	buf := &bytes.Buffer{}
	require.NoError(t, WriteResultsCsv(buf, invest, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t,
		"start,strategy,outcome,net_worth,contributions,net_gain,months,secure_months,first_secure,average_mortgage_rate,effective_mortgage_rate,failed_at,error",
		lines[0],
	)
	require.Equal(t, "1990-01,invest,Success,412345.67,380000.00,32345.67,120,60,,0.1013,0.0628,,", lines[1])
	require.Equal(t, "1990-02,invest,Failed,0.00,0.00,0.00,29,0,,0.0000,0.0000,1992-06,unable to make mortgage payment of $1423.16", lines[2])
}
