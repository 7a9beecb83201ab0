package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		log := zap.NewNop().Sugar()
		ctx := WithContext(context.Background(), log)

		require.Same(t, log, FromContext(ctx))
	})

	t.Run("falls back to a new logger", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})
}

func TestNewWithLevel(t *testing.T) {
	t.Setenv(envKey, "dev")
	require.False(t, NewWithLevel(false).Desugar().Core().Enabled(zap.DebugLevel))
	require.True(t, NewWithLevel(true).Desugar().Core().Enabled(zap.DebugLevel))

	t.Setenv(envKey, "")
	require.False(t, New().Desugar().Core().Enabled(zap.DebugLevel))
}
