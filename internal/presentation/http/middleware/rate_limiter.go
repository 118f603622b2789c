package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/kirekcahs/codebrew-pos/internal/application/service"
	"github.com/kirekcahs/codebrew-pos/internal/config"
)

// SessionRateLimiter provides per-session rate limiting so one runaway
// terminal cannot starve the others.
type SessionRateLimiter struct {
	limiters    map[uuid.UUID]*rateLimiterEntry
	mu          sync.RWMutex
	rate        rate.Limit
	burst       int
	cleanupTick time.Duration
	entryTTL    time.Duration
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewSessionRateLimiter creates a per-session rate limiter from the
// configured request budget (Requests allowed per Duration seconds).
func NewSessionRateLimiter(cfg *config.RateLimitConfig) *SessionRateLimiter {
	requests := cfg.Requests
	if requests <= 0 {
		requests = 100
	}
	duration := cfg.Duration
	if duration <= 0 {
		duration = 60
	}

	rl := &SessionRateLimiter{
		limiters:    make(map[uuid.UUID]*rateLimiterEntry),
		rate:        rate.Limit(float64(requests) / float64(duration)),
		burst:       requests,
		cleanupTick: 5 * time.Minute,
		entryTTL:    10 * time.Minute,
	}

	go rl.cleanupLoop()

	return rl
}

// getLimiter returns the rate limiter for a specific session
func (rl *SessionRateLimiter) getLimiter(sessionID uuid.UUID) *rate.Limiter {
	rl.mu.RLock()
	entry, exists := rl.limiters[sessionID]
	rl.mu.RUnlock()

	if exists {
		rl.mu.Lock()
		entry.lastSeen = time.Now()
		rl.mu.Unlock()
		return entry.limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Double check after acquiring write lock
	if entry, exists := rl.limiters[sessionID]; exists {
		entry.lastSeen = time.Now()
		return entry.limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[sessionID] = &rateLimiterEntry{
		limiter:  limiter,
		lastSeen: time.Now(),
	}

	return limiter
}

// cleanupLoop periodically removes stale rate limiter entries
func (rl *SessionRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupTick)
	defer ticker.Stop()

	for range ticker.C {
		rl.cleanup()
	}
}

func (rl *SessionRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.entryTTL)
	for sessionID, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, sessionID)
		}
	}
}

// Middleware returns a Gin middleware that applies per-session rate
// limiting. Requests without a resolved session pass through untouched;
// the auth middleware has already rejected anything unauthenticated.
func (rl *SessionRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(SessionKey)
		if !exists {
			c.Next()
			return
		}
		sess, ok := value.(*service.Session)
		if !ok {
			c.Next()
			return
		}

		limiter := rl.getLimiter(sess.Context().SessionID)

		if !limiter.Allow() {
			c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Rate limit exceeded. Please try again later.",
				"error":   "too_many_requests",
			})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

		c.Next()
	}
}
