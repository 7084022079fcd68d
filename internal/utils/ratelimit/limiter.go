// Package ratelimit provides per-client token bucket limiting for the
// endpoints that fan out to paid remote providers.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Rate is the refill speed and bucket size of one category.
type Rate struct {
	RequestsPerSecond float64
	Burst             int
}

// Limiter is a token bucket for one client in one category.
type Limiter struct {
	mu sync.Mutex

	perSec  float64
	burst   float64
	balance float64
	updated time.Time // last refill
	used    time.Time // last Allow, for idle pruning
	clock   func() time.Time
}

// NewLimiter returns a full bucket refilled at perSec tokens per second.
func NewLimiter(perSec float64, burst int) *Limiter {
	return newLimiterAt(perSec, burst, time.Now)
}

func newLimiterAt(perSec float64, burst int, clock func() time.Time) *Limiter {
	start := clock()
	return &Limiter{
		perSec:  perSec,
		burst:   float64(burst),
		balance: float64(burst),
		updated: start,
		used:    start,
		clock:   clock,
	}
}

// Allow takes one token and reports whether there was one to take.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.used = l.advance()
	if l.balance < 1 {
		return false
	}
	l.balance--
	return true
}

// RetryAfter is the time until the next token, rounded up to the millisecond.
// It is zero when a token is available or the bucket never refills.
func (l *Limiter) RetryAfter() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.advance()
	if l.balance >= 1 || l.perSec <= 0 {
		return 0
	}
	ms := math.Ceil((1 - l.balance) / l.perSec * 1000)
	return time.Duration(ms) * time.Millisecond
}

func (l *Limiter) idleSince(cutoff time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used.Before(cutoff)
}

// advance credits the tokens earned since the last refill and returns the
// current time. l.mu must be held.
func (l *Limiter) advance() time.Time {
	now := l.clock()
	l.balance = math.Min(l.burst, l.balance+now.Sub(l.updated).Seconds()*l.perSec)
	l.updated = now
	return now
}
