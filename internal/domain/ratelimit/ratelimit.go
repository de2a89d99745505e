// Package ratelimit implements a fixed-window request counter per client key.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Defaults for the generation endpoint.
const (
	DefaultLimit  = 5
	DefaultWindow = 24 * time.Hour
)

// Window is the counter state for one key.
type Window struct {
	Count   int
	ResetAt time.Time
}

// WindowStore performs the fixed-window read-modify-write atomically per key:
// a missing or elapsed window (now after ResetAt) restarts at count 1 with
// ResetAt = now+window; a window at limit is returned unchanged with
// allowed=false; otherwise the count is incremented.
type WindowStore interface {
	Hit(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (w Window, allowed bool, err error)
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is the time left in the window when denied.
	RetryAfter time.Duration
}

// Limiter applies a fixed window to keys.
type Limiter struct {
	store  WindowStore
	limit  int
	window time.Duration
	now    func() time.Time
}

// New builds a limiter over store.
func New(store WindowStore, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		limit:  DefaultLimit,
		window: DefaultWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Limit returns the configured maximum per window.
func (l *Limiter) Limit() int { return l.limit }

// Allow counts one request for key.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := l.now()
	w, allowed, err := l.store.Hit(ctx, key, l.limit, l.window, now)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: %w", ErrStore, err)
	}
	d := Decision{
		Allowed:   allowed,
		Limit:     l.limit,
		Remaining: max(l.limit-w.Count, 0),
		ResetAt:   w.ResetAt,
	}
	if !allowed {
		d.Remaining = 0
		d.RetryAfter = max(w.ResetAt.Sub(now), 0)
	}
	return d, nil
}

// Sweep drops elapsed windows.
func (l *Limiter) Sweep(ctx context.Context) (int, error) {
	return l.store.Sweep(ctx, l.now())
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithLimit sets the maximum requests per window.
func WithLimit(n int) Option {
	return func(l *Limiter) {
		if n > 0 {
			l.limit = n
		}
	}
}

// WithWindow sets the window length.
func WithWindow(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.window = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}
