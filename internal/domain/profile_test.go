package domain

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	profile, endProfile := NewProfile()

	simulate := profile.StartPhase("simulate")
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			simulate.CountRun(i%2 == 0)
		}(i)
	}
	wg.Wait()
	require.Nil(t, simulate.ElapsedMs)

	summarize := profile.StartPhase("summarize")
	require.NotNil(t, simulate.ElapsedMs)
	require.Equal(t, int64(10), simulate.Runs)
	require.Equal(t, int64(5), simulate.Cached)
	require.Nil(t, summarize.ElapsedMs)

	endProfile()
	require.NotNil(t, summarize.ElapsedMs)
	require.NotNil(t, profile.TotalMs)
	require.Contains(t, profile.String(), "(10 runs, 5 cached)")

	bytes, err := profile.ToJsonBytes()
	require.NoError(t, err)

	decoded := struct {
		Phases []struct {
			Name string `json:"name"`
			Runs int64  `json:"runs"`
		} `json:"phases"`
	}{}
	require.NoError(t, json.Unmarshal(bytes, &decoded))
	require.Len(t, decoded.Phases, 2)
	require.Equal(t, int64(10), decoded.Phases[0].Runs)
	require.Equal(t, "summarize", decoded.Phases[1].Name)
}
