package journal

import (
	"context"
	"log"

	"github.com/aristath/gantt/internal/events"
)

// FollowOption configures Follow.
type FollowOption func(*followConfig)

type followConfig struct {
	retry RetryConfig
}

// WithRetry overrides the write retry policy.
func WithRetry(cfg RetryConfig) FollowOption {
	return func(c *followConfig) { c.retry = cfg }
}

// Follow records every event from sub until sub is closed or ctx is done.
// Writes are retried with backoff behind a circuit breaker; an event that
// still fails is logged and skipped.
func Follow(ctx context.Context, j Journal, sub <-chan events.Event, opts ...FollowOption) error {
	cfg := followConfig{retry: DefaultRetryConfig()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cb := newBreaker()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-sub:
			if !ok {
				return nil
			}
			if err := recordWithRetry(ctx, j, e, cb, cfg.retry); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Printf("WARNING: journal: skipping %s: %v", e.EventType(), err)
			}
		}
	}
}
