package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/http/middleware"
	"github.com/Rahulbariki/brand-automation/internal/service"
)

type UsageHandler struct {
	usageService service.UsageService
}

func NewUsageHandler(usageService service.UsageService) *UsageHandler {
	return &UsageHandler{usageService: usageService}
}

// Current reports this calendar month's usage against the entitled quota.
func (h *UsageHandler) Current(c *gin.Context) {
	ctx := c.Request.Context()
	summary, err := h.usageService.Summary(ctx, middleware.GetUser(ctx), middleware.GetEntitlement(ctx))
	if err != nil {
		slog.ErrorContext(ctx, "usage summary failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "usage summary failed"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
