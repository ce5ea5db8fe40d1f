package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

// memoryLimiter is a fixed-window counter per client. Expired windows are
// dropped at most once per window so the map stays bounded by the number
// of clients seen in the last two windows.
type memoryLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	clients   map[string]*clientInfo
	lastSweep time.Time
}

func newMemoryLimiter(window time.Duration) *memoryLimiter {
	return &memoryLimiter{window: window, clients: make(map[string]*clientInfo)}
}

// hit counts a request from key and returns the count in its current window.
func (l *memoryLimiter) hit(key string, now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.window {
		for k, ci := range l.clients {
			if now.Sub(ci.last) > l.window {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	ci, ok := l.clients[key]
	if !ok || now.Sub(ci.last) > l.window {
		ci = &clientInfo{last: now}
		l.clients[key] = ci
	}
	ci.count++
	return ci.count
}

func (l *memoryLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// SimpleRateLimit blocks clients that send more than maxRequests per window.
// State is kept in process, one limiter per call.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	limiter := newMemoryLimiter(window)

	return func(c *gin.Context) {
		if limiter.hit(c.ClientIP(), time.Now()) > maxRequests {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.String(http.StatusTooManyRequests, "Too many requests, try again later.")
			c.Abort()
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

// RateLimit uses Redis when it was initialised and falls back to the
// in-process limiter otherwise.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	if redisClient != nil {
		return RedisRateLimit(maxRequests, window)
	}
	return SimpleRateLimit(maxRequests, window)
}
