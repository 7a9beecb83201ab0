package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestResults(t *testing.T) {
	start := MustMonthYear(1, 1990)
	results := NewResults(uuid.New(), Strategy_Invest, start, start.AddMonths(2))

	results.Add(Result{Start: start.AddMonths(2), Outcome: Outcome_Failed})
	results.Add(Result{Start: start, Outcome: Outcome_Success})
	results.Add(Result{Start: start.AddMonths(1), Outcome: Outcome_Success})

	require.Equal(t, 3, results.Len())
	require.Equal(t, 2, results.Count(Outcome_Success))
	require.Equal(t, 1, results.Count(Outcome_Failed))

	items := results.Items()
	require.Equal(t, start, items[0].Start)
	require.Equal(t, start.AddMonths(2), items[2].Start)

	got, ok := results.Get(start.AddMonths(1))
	require.True(t, ok)
	require.Equal(t, Outcome_Success, got.Outcome)
	_, ok = results.Get(start.AddMonths(5))
	require.False(t, ok)
}

func TestOutcome_String(t *testing.T) {
	require.Equal(t, "Undefined", Outcome_Undefined.String())
	require.Equal(t, "Invalid", Outcome_Invalid.String())
	require.Equal(t, "Error", Outcome_Error.String())
}
