package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goCache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL = 10 * time.Minute
	limiterCleanup = 5 * time.Minute
)

// RateLimit returns middleware that enforces a per-client limit of perMinute
// requests. A non-positive perMinute disables limiting.
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiters := goCache.New(limiterIdleTTL, limiterCleanup)
	every := rate.Every(time.Minute / time.Duration(perMinute))

	return func(c *gin.Context) {
		key := c.ClientIP()

		limiter := rate.NewLimiter(every, perMinute)
		if err := limiters.Add(key, limiter, goCache.DefaultExpiration); err != nil {
			// existing client: reuse its limiter and extend its idle TTL
			if v, ok := limiters.Get(key); ok {
				limiter = v.(*rate.Limiter)
			}
			limiters.SetDefault(key, limiter)
		}

		if !limiter.Allow() {
			slog.Debug("rate limited", "client_ip", key, "limit", perMinute)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests. Please wait a moment.",
			})
			return
		}

		c.Next()
	}
}
