package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces outbound generation calls with a shared token bucket so a
// batch run does not trip the provider's server-side limits. This is
// client-side politeness toward the upstream service, not caller-facing
// rate limiting.
type Limiter struct {
	bucket *rate.Limiter
}

// NewLimiter creates a limiter allowing requestsPerSecond sustained with
// the given burst
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		bucket: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until a request may proceed or the context is done
func (l *Limiter) Wait(ctx context.Context) error {
	return l.bucket.Wait(ctx)
}

// Allow checks if a request may proceed without waiting
func (l *Limiter) Allow() bool {
	return l.bucket.Allow()
}
