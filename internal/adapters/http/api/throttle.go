package api

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	throttleCleanupInterval = time.Minute
	throttleIdleTimeout     = 3 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPThrottle is a token bucket per client address.
type IPThrottle struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	now      func() time.Time
}

// NewIPThrottle builds a throttle refilling rps tokens per second up to burst.
func NewIPThrottle(rps float64, burst int) *IPThrottle {
	return &IPThrottle{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow takes one token for ip.
func (t *IPThrottle) Allow(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	v, ok := t.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.rps, t.burst)}
		t.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Cleanup forgets clients not seen for idle.
func (t *IPThrottle) Cleanup(idle time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	cutoff := t.now().Add(-idle)
	for ip, v := range t.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(t.visitors, ip)
			removed++
		}
	}
	return removed
}

// Len reports how many clients are tracked.
func (t *IPThrottle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.visitors)
}
