package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envKey = "MORTGAGESIM_ENV"

func New() *zap.SugaredLogger {
	return NewWithLevel(false)
}

// NewWithLevel builds the process logger. verbose turns on the per-month
// simulation trace, which is logged at debug level.
func NewWithLevel(verbose bool) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	opts := []zap.Option{
		zap.AddStacktrace(zap.ErrorLevel),
	}

	if strings.ToLower(os.Getenv(envKey)) == "dev" {
		cfg := zap.NewDevelopmentConfig()
		if !verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
		logger, err = cfg.Build(opts...)
	} else {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		opts = append(opts, zap.Fields(zap.Field{
			Key:    envKey,
			Type:   zapcore.StringType,
			String: os.Getenv(envKey),
		}))
		logger, err = cfg.Build(opts...)
	}

	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}

	return logger.Sugar()
}

type contextKey struct{}

func WithContext(ctx context.Context, log *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

func FromContext(ctx context.Context) *zap.SugaredLogger {
	log, ok := ctx.Value(contextKey{}).(*zap.SugaredLogger)
	if !ok || log == nil {
		log = New()
		log.Warn("no logger found in ctx - creating new one")
	}
	return log
}
