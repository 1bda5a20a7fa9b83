package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter is a fixed-window request limiter keyed by client identifier.
// State is in-memory: each instance limits a single process.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	entries map[string]*rateLimitEntry
}

type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

// NewRateLimiter creates a limiter allowing max requests per window and
// starts a background sweep of expired windows.
func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	rl := &RateLimiter{
		window:  window,
		max:     max,
		entries: make(map[string]*rateLimitEntry),
	}
	go rl.sweep()
	return rl
}

// Allow records a request for the identifier and reports whether it fits in
// the current window, along with the remaining quota and the window reset
// time (unix seconds).
func (rl *RateLimiter) Allow(identifier string) (allowed bool, remaining int, reset int64) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.entries[identifier]
	if !ok || entry.resetTime.Before(now) {
		entry = &rateLimitEntry{count: 0, resetTime: now.Add(rl.window)}
		rl.entries[identifier] = entry
	}

	entry.count++
	if entry.count > rl.max {
		return false, 0, entry.resetTime.Unix()
	}
	return true, rl.max - entry.count, entry.resetTime.Unix()
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		for key, entry := range rl.entries {
			if entry.resetTime.Before(now) {
				delete(rl.entries, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware enforces the limit per client IP and sets X-RateLimit-* headers.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, remaining, reset := rl.Allow(ClientIdentifier(c.Request()))

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(rl.max))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please try again later.")
			}
			return next(c)
		}
	}
}

// ClientIdentifier derives the limiter key from the request: the first
// X-Forwarded-For hop when present (behind a proxy), then X-Real-IP, then
// the remote address.
func ClientIdentifier(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip, _, found := strings.Cut(forwarded, ","); found || ip != "" {
			return "ip:" + strings.TrimSpace(ip)
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return "ip:" + realIP
	}
	return "ip:" + r.RemoteAddr
}
