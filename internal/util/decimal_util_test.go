package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestToDollarCents(t *testing.T) {
	require.Equal(t, "1.24", ToDollarCents(decimal.RequireFromString("1.235")).String())
	require.Equal(t, "1.24", ToDollarCents(decimal.RequireFromString("1.245")).String())
	require.Equal(t, "0.0768", ToPercent(decimal.RequireFromString("0.07685")).String())
}

func TestCeilCents(t *testing.T) {
	require.Equal(t, "10.01", CeilCents(decimal.RequireFromString("10.001")).String())
	require.Equal(t, "10", CeilCents(decimal.RequireFromString("10.00")).String())
	require.Equal(t, "-3.33", CeilCents(decimal.RequireFromString("-3.339")).String())
}

func TestClamp(t *testing.T) {
	lo, hi := decimal.Zero, decimal.NewFromInt(1)
	require.True(t, Clamp(decimal.NewFromInt(2), lo, hi).Equal(hi))
	require.True(t, Clamp(decimal.NewFromInt(-2), lo, hi).Equal(lo))
	require.Equal(t, "0.5", Clamp(decimal.RequireFromString("0.5"), lo, hi).String())
}
