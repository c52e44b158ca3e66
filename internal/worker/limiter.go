package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces external model calls. The rate limit keeps batch traffic
// under the API's advertised limits; the extra delay covers providers
// whose effective limits are stricter than advertised. Pacing is purely
// about quota, not correctness.
type Limiter struct {
	limiter *rate.Limiter
	delay   time.Duration
}

// NewLimiter creates a call limiter
func NewLimiter(requestsPerSecond float64, burst int, delay time.Duration) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		delay:   delay,
	}
}

// Wait blocks until the next call is allowed, then applies the extra delay
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}

	if l.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.delay):
		}
	}

	return nil
}

// Allow reports whether a call may proceed right now without waiting
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
