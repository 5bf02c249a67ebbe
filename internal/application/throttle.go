package application

import (
	"context"

	"golang.org/x/time/rate"
)

type throttler interface {
	Wait(ctx context.Context) error
}

type limiterAdapter struct {
	limiter *rate.Limiter
}

// newFileThrottle paces file processing. A non-positive rate disables pacing.
func newFileThrottle(filesPerSecond float64) throttler {
	if filesPerSecond <= 0 {
		return unthrottled{}
	}
	return &limiterAdapter{
		limiter: rate.NewLimiter(rate.Limit(filesPerSecond), 1),
	}
}

func (l *limiterAdapter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return ctx.Err()
	}
	return l.limiter.Wait(ctx)
}

type unthrottled struct{}

func (unthrottled) Wait(ctx context.Context) error {
	return ctx.Err()
}
