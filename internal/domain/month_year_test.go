package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMonthYear(t *testing.T) {
	m, err := NewMonthYear(2, 1990)
	require.NoError(t, err)
	require.Equal(t, MonthYear{Month: 2, Year: 1990}, m)

	_, err = NewMonthYear(13, 1990)
	require.Error(t, err)
	_, err = NewMonthYear(0, 1990)
	require.Error(t, err)
	_, err = NewMonthYear(1, 1850)
	require.Error(t, err)
}

func TestMonthYear_arithmetic(t *testing.T) {
	m := MustMonthYear(11, 1999)

	require.Equal(t, MustMonthYear(2, 2000), m.AddMonths(3))
	require.Equal(t, MustMonthYear(12, 1998), m.AddMonths(-11))
	require.Equal(t, MustMonthYear(11, 2009), m.AddYears(10))
	require.Equal(t, MustMonthYear(1, 1999), MustMonthYear(1, 2000).AddMonths(-12))

	require.Equal(t, 3, MonthDifference(m, m.AddMonths(3)))
	require.Equal(t, 3, MonthDifference(m.AddMonths(3), m))
	require.Equal(t, 0, MonthDifference(m, m))
}

func TestMonthYear_compare(t *testing.T) {
	a := MustMonthYear(12, 1999)
	b := MustMonthYear(1, 2000)

	require.True(t, a.Before(b))
	require.True(t, b.After(a))
	require.False(t, a.After(a))
	require.Equal(t, 0, a.Compare(a))
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
}

func TestConstrain(t *testing.T) {
	require.Equal(t, MinMonthYear, Constrain(MustMonthYear(1, 1950)))
	require.Equal(t, MaxMonthYear, Constrain(MustMonthYear(1, 2050)))
	require.Equal(t, MustMonthYear(6, 1990), Constrain(MustMonthYear(6, 1990)))
}

func TestMonthYear_format(t *testing.T) {
	m := MustMonthYear(3, 1985)
	require.Equal(t, "March 1985", m.String())
	require.Equal(t, "1985-03", m.Key())
	require.True(t, m.IsQuarterEnd())
	require.False(t, m.AddMonths(1).IsQuarterEnd())

	parsed, err := ParseMonthYear("1985-03")
	require.NoError(t, err)
	require.Equal(t, m, parsed)

	_, err = ParseMonthYear("03/1985")
	require.Error(t, err)
}
