package core

import (
	"context"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
)

type loggerKey struct{}

// WithLogger attaches a logger to ctx for SafeRun.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFrom returns the logger stored on ctx, or a no-op logger.
func LoggerFrom(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

// SafeRun runs fn and converts a panic into an error.
func SafeRun(ctx context.Context, name string, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := string(debug.Stack())
			err = fmt.Errorf("%s panicked: %v", name, r)

			LoggerFrom(ctx).Error("recovered panic",
				zap.String("task", name),
				zap.Any("panic", r),
				zap.String("stack", stack),
			)
		}
	}()

	return fn(ctx)
}
