package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Rahulbariki/brand-automation/core/config"
)

// RateLimit enforces a fixed-window per-caller limit backed by Redis, keyed
// by user id when authenticated and client IP otherwise. Redis outages fail
// open: throttling is protection, not correctness.
func RateLimit(client *redis.Client, cfg config.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		caller := c.ClientIP()
		if user := GetUser(ctx); user != nil {
			caller = fmt.Sprintf("u:%d", user.ID)
		}
		window := time.Now().Unix() / int64(cfg.Window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%d", caller, window)

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			slog.WarnContext(ctx, "rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, cfg.Window)
		}

		if count > int64(cfg.Requests) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("too many requests, limit is %d per %s", cfg.Requests, cfg.Window),
			})
			return
		}

		c.Next()
	}
}
