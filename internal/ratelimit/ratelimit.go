// Package ratelimit caps how many searches one client may submit per
// window, so a single browser cannot flood the upstream people API.
package ratelimit

import (
	"sync"
	"time"
)

// window counts the searches a client submitted since start.
type window struct {
	start    time.Time
	searches int
}

// Limiter allows up to limit searches per client address in each fixed
// window. Counters live in memory and are shared by all view sessions from
// the same address.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	period  time.Duration
	idle    time.Duration
	now     func() time.Time // for testing
}

// New returns a limiter allowing limit searches per period. Addresses that
// have not searched for five periods are forgotten.
func New(limit int, period time.Duration) *Limiter {
	return &Limiter{
		clients: make(map[string]*window),
		limit:   limit,
		period:  period,
		idle:    5 * period,
		now:     time.Now,
	}
}

// Allow counts one search from client. When the client has used up its
// searches for the current window it returns false and the time left until
// the window rolls over.
func (l *Limiter) Allow(client string) (allowed bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.forgetIdle(now)

	w, ok := l.clients[client]
	if !ok || now.Sub(w.start) >= l.period {
		l.clients[client] = &window{start: now, searches: 1}
		return true, 0
	}

	if w.searches >= l.limit {
		return false, l.period - now.Sub(w.start)
	}
	w.searches++
	return true, 0
}

// forgetIdle drops addresses whose window started more than l.idle ago.
// Must be called with l.mu held.
func (l *Limiter) forgetIdle(now time.Time) {
	for client, w := range l.clients {
		if now.Sub(w.start) > l.idle {
			delete(l.clients, client)
		}
	}
}
