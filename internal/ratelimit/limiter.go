// Package ratelimit paces outgoing requests with a token bucket denominated
// in exchange weight units. This is pacing, not back-off: a rejected or
// throttled response is never retried here.
package ratelimit

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps a token-bucket limiter. Each request consumes its endpoint
// weight rather than a flat count, matching how the exchange accounts for
// rate limits.
type Limiter struct {
	limiter *rate.Limiter
	metrics *Metrics
}

// Metrics tracks limiter usage.
type Metrics struct {
	totalRequests  atomic.Int64
	deniedRequests atomic.Int64
}

// New creates a Limiter allowing the given weight units per period. The
// bucket capacity equals the per-period budget, so a single request may not
// weigh more than that.
func New(weightUnits int, period time.Duration) *Limiter {
	perSecond := float64(weightUnits) / period.Seconds()
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), weightUnits),
		metrics: &Metrics{},
	}
}

// Wait blocks until weight units are available or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context, weight int) error {
	l.metrics.totalRequests.Add(1)
	if err := l.limiter.WaitN(ctx, weight); err != nil {
		l.metrics.deniedRequests.Add(1)
		return err
	}
	return nil
}

// Allow reports whether weight units are immediately available, consuming
// them if so.
func (l *Limiter) Allow(weight int) bool {
	l.metrics.totalRequests.Add(1)
	allowed := l.limiter.AllowN(time.Now(), weight)
	if !allowed {
		l.metrics.deniedRequests.Add(1)
	}
	return allowed
}

// SetLimit updates the budget to the given weight units per period.
func (l *Limiter) SetLimit(weightUnits int, period time.Duration) {
	perSecond := float64(weightUnits) / period.Seconds()
	l.limiter.SetLimit(rate.Limit(perSecond))
	l.limiter.SetBurst(weightUnits)
}

// Metrics returns a snapshot of limiter statistics.
func (l *Limiter) Metrics() MetricsSnapshot {
	return MetricsSnapshot{
		TotalRequests:  l.metrics.totalRequests.Load(),
		DeniedRequests: l.metrics.deniedRequests.Load(),
	}
}

// MetricsSnapshot is a point-in-time capture of limiter statistics.
type MetricsSnapshot struct {
	// TotalRequests is the number of pacing checks performed.
	TotalRequests int64
	// DeniedRequests is the number of checks denied or cancelled.
	DeniedRequests int64
}
