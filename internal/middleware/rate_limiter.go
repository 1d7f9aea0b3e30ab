package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter implements a simple in-memory rate limiter keyed per user and
// per client IP. The webhook route is exempt; provider retries must never be
// throttled.
type RateLimiter struct {
	userLimits map[uint]*windowCount
	ipLimits   map[string]*windowCount
	mu         sync.RWMutex

	userMaxRequests int
	ipMaxRequests   int
	window          time.Duration
}

type windowCount struct {
	requests  int
	resetTime time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(userMaxRequests, ipMaxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		userLimits:      make(map[uint]*windowCount),
		ipLimits:        make(map[string]*windowCount),
		userMaxRequests: userMaxRequests,
		ipMaxRequests:   ipMaxRequests,
		window:          window,
	}

	// Start cleanup goroutine
	go rl.cleanup()

	return rl
}

// CheckUserLimit checks if user has exceeded rate limit
func (rl *RateLimiter) CheckUserLimit(userID uint) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	limit, exists := rl.userLimits[userID]
	if !exists || now.After(limit.resetTime) {
		rl.userLimits[userID] = &windowCount{
			requests:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if limit.requests >= rl.userMaxRequests {
		return false
	}

	limit.requests++
	return true
}

// CheckIPLimit checks if IP has exceeded rate limit
func (rl *RateLimiter) CheckIPLimit(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	limit, exists := rl.ipLimits[ip]
	if !exists || now.After(limit.resetTime) {
		rl.ipLimits[ip] = &windowCount{
			requests:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if limit.requests >= rl.ipMaxRequests {
		return false
	}

	limit.requests++
	return true
}

// Limit is the gin middleware. Authenticated requests count against the user
// window, everything else against the IP window.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed := true
		if userID, ok := CurrentUserID(c); ok {
			allowed = rl.CheckUserLimit(userID)
		} else {
			allowed = rl.CheckIPLimit(c.ClientIP())
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, slow down",
				"code":  "RATE_LIMIT_EXCEEDED",
			})
			return
		}

		c.Next()
	}
}

// cleanup removes expired entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()

		for userID, limit := range rl.userLimits {
			if now.After(limit.resetTime) {
				delete(rl.userLimits, userID)
			}
		}

		for ip, limit := range rl.ipLimits {
			if now.After(limit.resetTime) {
				delete(rl.ipLimits, ip)
			}
		}

		rl.mu.Unlock()
	}
}

// Reset clears all rate limits (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.userLimits = make(map[uint]*windowCount)
	rl.ipLimits = make(map[string]*windowCount)
}
