package middlewares

import (
	"log/slog"
	"sync"
	"time"

	"backend/pkg/resp"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed-window counter keyed by client+route. It is an
// injected dependency, not package state, so tests can construct and reset
// one without touching other instances.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string]*window
	max    int
	period time.Duration
	clock  utils.Clock
}

type window struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(max int, period time.Duration, clock utils.Clock) *RateLimiter {
	return &RateLimiter{
		hits:   make(map[string]*window),
		max:    max,
		period: period,
		clock:  clock,
	}
}

// Allow counts one hit for key and reports whether it is within the limit.
func (l *RateLimiter) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.hits[key]
	if !ok || now.After(w.resetAt) {
		l.hits[key] = &window{count: 1, resetAt: now.Add(l.period)}
		return true
	}
	if w.count >= l.max {
		return false
	}
	w.count++
	return true
}

// Reset clears every window.
func (l *RateLimiter) Reset() {
	l.mu.Lock()
	l.hits = make(map[string]*window)
	l.mu.Unlock()
}

// RateLimitMiddleware guards a route group with the given limiter.
func RateLimitMiddleware(l *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + "_" + c.FullPath()
		if !l.Allow(key) {
			slog.Warn("rate limit exceeded", "ip", c.ClientIP(), "path", c.FullPath())
			resp.TooManyRequests(c, "too many requests, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
