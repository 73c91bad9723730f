// SPDX-License-Identifier: MIT
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// window counts requests from one client within the current interval
type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter allows capacity requests per client per interval
type RateLimiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	capacity int
	interval time.Duration
	now      func() time.Time
}

// NewRateLimiter creates a new rate limiter. A capacity of zero or less
// disables limiting.
func NewRateLimiter(capacity int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		windows:  make(map[string]*window),
		capacity: capacity,
		interval: interval,
		now:      time.Now,
	}
}

// Run drops expired windows until ctx is done
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip, w := range rl.windows {
		if now.After(w.resetAt) {
			delete(rl.windows, ip)
		}
	}
}

// Allow records a request from ip and reports whether it fits the window,
// along with the requests left in it
func (rl *RateLimiter) Allow(ip string) (bool, int) {
	if rl.capacity <= 0 {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[ip]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(rl.interval)}
		rl.windows[ip] = w
	}

	if w.count >= rl.capacity {
		return false, 0
	}
	w.count++
	return true, rl.capacity - w.count
}

// RateLimitMiddleware limits requests to the given paths. Clients are told
// apart by c.ClientIP, which only honors forwarding headers from the
// engine's trusted proxies.
func RateLimitMiddleware(limiter *RateLimiter, paths ...string) gin.HandlerFunc {
	pathMap := make(map[string]bool, len(paths))
	for _, path := range paths {
		pathMap[path] = true
	}

	return func(c *gin.Context) {
		if limiter.capacity <= 0 || !pathMap[c.Request.URL.Path] {
			c.Next()
			return
		}

		allowed, remaining := limiter.Allow(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.capacity))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(limiter.interval.Seconds())))
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}
