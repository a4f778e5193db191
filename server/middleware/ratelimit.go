package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/chaosregistry/platform/errors"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// RequestsPerMinute is the maximum number of requests allowed per minute per key.
	RequestsPerMinute int
	// KeyFunc extracts the rate limit key from a request. Defaults to client IP.
	KeyFunc func(*gin.Context) string
}

// RateLimit returns a Gin middleware enforcing a per-key sliding one-minute
// window. Rejected requests receive the standard RATE_LIMITED error body.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPBasedKey
	}

	lim := &slidingWindow{
		hits:  make(map[string][]time.Time),
		limit: cfg.RequestsPerMinute,
	}
	go lim.evictLoop()

	limited := apperrors.RateLimited()
	return func(c *gin.Context) {
		if !lim.take(cfg.KeyFunc(c)) {
			c.AbortWithStatusJSON(limited.HTTPStatus, limited.ToResponse())
			return
		}
		c.Next()
	}
}

// IPBasedKey extracts the client IP for use as a rate limit key.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}

// UserBasedKey extracts the user_id from the context, falling back to client IP.
func UserBasedKey(c *gin.Context) string {
	if uid, exists := c.Get("user_id"); exists {
		if s, ok := uid.(string); ok && s != "" {
			return s
		}
	}
	return c.ClientIP()
}

// slidingWindow counts request timestamps per key over the trailing minute.
type slidingWindow struct {
	mu    sync.Mutex
	hits  map[string][]time.Time
	limit int
}

// take records one request for key and reports whether it fits the window.
func (w *slidingWindow) take(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	window := pruneBefore(w.hits[key], now.Add(-time.Minute))
	if len(window) >= w.limit {
		w.hits[key] = window
		return false
	}
	w.hits[key] = append(window, now)
	return true
}

// evictLoop periodically drops keys whose whole window has aged out, so the
// map does not grow with the set of clients ever seen.
func (w *slidingWindow) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		w.mu.Lock()
		cutoff := time.Now().Add(-time.Minute)
		for key, hits := range w.hits {
			if live := pruneBefore(hits, cutoff); len(live) == 0 {
				delete(w.hits, key)
			} else {
				w.hits[key] = live
			}
		}
		w.mu.Unlock()
	}
}

// pruneBefore keeps only the timestamps after cutoff. Timestamps are
// appended in order, so the survivors are a suffix.
func pruneBefore(hits []time.Time, cutoff time.Time) []time.Time {
	for i, t := range hits {
		if t.After(cutoff) {
			return hits[i:]
		}
	}
	return nil
}
