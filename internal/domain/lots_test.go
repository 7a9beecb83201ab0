package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestStockLot(t *testing.T) {
	lot := NewStockLot(decimal.NewFromInt(5000), decimal.NewFromInt(50))

	require.Equal(t, "100", lot.Shares.String())
	require.Equal(t, "5000", lot.Basis().String())
	require.Equal(t, "6000", lot.Value(decimal.NewFromInt(60)).String())
	require.Equal(t, "1000", lot.Gain(decimal.NewFromInt(60)).String())
	require.Equal(t, "-1000", lot.Gain(decimal.NewFromInt(40)).String())
}

func TestBondLot(t *testing.T) {
	now := MustMonthYear(1, 1990)
	rate := decimal.RequireFromString("0.06")

	t.Run("par exceeds purchase", func(t *testing.T) {
		lot := NewBondLot(decimal.NewFromInt(1000), rate, now)
		require.True(t, lot.Valid())
		require.Equal(t, MustMonthYear(1, 1991), lot.Maturity)
		require.Equal(t, "1005.03", lot.Par.Round(2).String())
	})

	t.Run("zero rate bond is at par", func(t *testing.T) {
		lot := NewBondLot(decimal.NewFromInt(1000), decimal.Zero, now)
		require.True(t, lot.Valid())
		require.True(t, lot.Par.Equal(lot.Purchase))
	})

	t.Run("face value approaches par", func(t *testing.T) {
		lot := NewBondLot(decimal.NewFromInt(1000), rate, now)

		require.Equal(t, "1000", lot.FaceValue(now, rate).String())
		mid := lot.FaceValue(now.AddMonths(6), rate)
		require.True(t, mid.GreaterThan(decimal.NewFromInt(1000)))
		require.True(t, mid.LessThan(lot.Par))
		require.Equal(t, "1005.03", lot.FaceValue(now.AddYears(1), rate).String())
		require.Equal(t, "1005.03", lot.FaceValue(now.AddYears(2), rate).String())
	})

	t.Run("rising rates lower face value", func(t *testing.T) {
		lot := NewBondLot(decimal.NewFromInt(1000), rate, now)
		require.True(t, lot.FaceValue(now, decimal.RequireFromString("0.12")).LessThan(decimal.NewFromInt(1000)))
	})

	t.Run("maturity", func(t *testing.T) {
		lot := NewBondLot(decimal.NewFromInt(1000), rate, now)
		require.False(t, lot.IsMatured(now.AddMonths(11)))
		require.True(t, lot.IsMatured(now.AddMonths(12)))
	})

	t.Run("scaling keeps par above purchase", func(t *testing.T) {
		lot := NewBondLot(decimal.NewFromInt(1000), rate, now)
		lot.Scale(decimal.RequireFromString("0.25"))
		require.True(t, lot.Valid())
		require.Equal(t, "250", lot.Purchase.String())
	})
}
