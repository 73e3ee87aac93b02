package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"meridian-api/internal/auth"
	"meridian-api/internal/logger"
)

// RateLimiter applies a per-client token bucket. Clients are keyed by
// authenticated user ID when available, client IP otherwise.
type RateLimiter struct {
	limiters        sync.Map
	rate            int
	burst           int
	cleanupInterval time.Duration
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func NewRateLimiter(requestsPerSecond, burst int) *RateLimiter {
	rl := &RateLimiter{
		rate:            requestsPerSecond,
		burst:           burst,
		cleanupInterval: 5 * time.Minute,
	}
	go rl.cleanup()
	return rl
}

// cleanup drops limiters that have been idle for 10 minutes.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.limiters.Range(func(key, value interface{}) bool {
			if entry, ok := value.(*limiterEntry); ok {
				if now.Sub(entry.lastAccess) > 10*time.Minute {
					rl.limiters.Delete(key)
				}
			}
			return true
		})
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	if val, ok := rl.limiters.Load(key); ok {
		entry := val.(*limiterEntry)
		entry.lastAccess = time.Now()
		return entry.limiter
	}

	entry := &limiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(rl.rate), rl.burst),
		lastAccess: time.Now(),
	}
	actual, _ := rl.limiters.LoadOrStore(key, entry)
	return actual.(*limiterEntry).limiter
}

func clientIdentifier(c *gin.Context) string {
	if userID, exists := c.Get(auth.ContextUserIDKey); exists {
		return fmt.Sprintf("user:%v", userID)
	}
	clientIP := c.ClientIP()
	if clientIP == "" {
		clientIP = "unknown"
	}
	return fmt.Sprintf("ip:%s", clientIP)
}

// Middleware returns the Gin handler enforcing the limit. Health
// endpoints are exempt.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" || c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}

		clientID := clientIdentifier(c)
		limiter := rl.getLimiter(clientID)

		if !limiter.Allow() {
			logger.Warn("rate limit exceeded",
				zap.String("client_id", clientID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))

			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.rate))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please try again later.",
				"retry_after": 1,
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.rate))
		c.Next()
	}
}
