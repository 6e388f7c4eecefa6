package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/service"
)

// EnforceQuota rejects requests once the billing owner's calendar-month usage
// is exhausted. The response carries the numbers so clients can render
// upgrade prompts. Recording happens in the handler after generation, so the
// check is soft near the boundary.
func EnforceQuota(usageService service.UsageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		user := GetUser(ctx)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		err := usageService.Authorize(ctx, user, GetEntitlement(ctx))
		if err == nil {
			c.Next()
			return
		}

		var quotaErr *service.QuotaError
		if errors.As(err, &quotaErr) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "monthly quota exceeded",
				"used":      quotaErr.Used,
				"limit":     quotaErr.Limit,
				"remaining": 0,
			})
			return
		}

		slog.ErrorContext(ctx, "quota check failed", "error", err, "user_id", user.ID)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "usage check failed"})
	}
}
