package crawl

import (
	"context"

	"github.com/fwojciec/docdex"
	"golang.org/x/time/rate"
)

var _ docdex.RateLimiter = (*Limiter)(nil)

// Limiter enforces a minimum delay between the start of any two fetches
// using a single shared token bucket with no bursting. It bounds request
// cadence; the concurrency limit separately bounds in-flight requests,
// and both constraints apply simultaneously.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter allowing rps requests per second.
// Non-positive rps falls back to 1.
func NewLimiter(rps float64) *Limiter {
	if rps <= 0 {
		rps = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(rps), 1)}
}

// Wait blocks until the limiter allows the next request to start.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
