package session

import (
	"context"
	"time"

	"bookreview/internal/platform/logger"
)

const defaultCleanupInterval = time.Hour

// ExpiryCleaner is implemented by stores whose expired records are not evicted on their own.
type ExpiryCleaner interface {
	CleanupExpired(ctx context.Context) error
}

// RunExpiryCleanup calls CleanupExpired every interval until ctx is cancelled.
// Failures are logged and retried on the next tick.
func RunExpiryCleanup(ctx context.Context, c ExpiryCleaner, interval time.Duration) {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.CleanupExpired(ctx); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("expired session cleanup failed")
			}
		}
	}
}
