package middlewares

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
}

func TestRateLimiterAllowWithinWindow(t *testing.T) {
	clock := newTestClock()
	l := NewRateLimiter(3, time.Minute, clock)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("client-a"), "hit %d", i+1)
	}
	assert.False(t, l.Allow("client-a"))

	// independent keys have independent windows
	assert.True(t, l.Allow("client-b"))
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	clock := newTestClock()
	l := NewRateLimiter(2, time.Minute, clock)

	assert.True(t, l.Allow("k"))
	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))

	clock.Advance(61 * time.Second)
	assert.True(t, l.Allow("k"))
}

func TestRateLimiterReset(t *testing.T) {
	clock := newTestClock()
	l := NewRateLimiter(1, time.Minute, clock)

	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))

	l.Reset()
	assert.True(t, l.Allow("k"))
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clock := newTestClock()
	l := NewRateLimiter(2, time.Minute, clock)

	r := gin.New()
	r.POST("/api/auth/login", RateLimitMiddleware(l), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())

	clock.Advance(2 * time.Minute)
	assert.Equal(t, http.StatusOK, do())
}
