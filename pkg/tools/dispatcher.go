package tools

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ToolFunc defines a function executed asynchronously.
type ToolFunc func(ctx context.Context) error

// Dispatch runs fn in a separate goroutine and logs its outcome under name.
// The returned channel is closed when fn has finished.
func Dispatch(ctx context.Context, logger *zap.Logger, name string, fn ToolFunc) <-chan struct{} {
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				logger.Error("tool panicked", zap.String("tool", name), zap.Any("panic", r))
			}
		}()

		start := time.Now()
		if err := fn(ctx); err != nil {
			logger.Warn("tool failed", zap.String("tool", name), zap.Error(err))
			return
		}
		logger.Debug("tool finished", zap.String("tool", name), zap.Duration("took", time.Since(start)))
	}()
	return done
}
