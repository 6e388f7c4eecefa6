package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/http/dto"
	"github.com/Rahulbariki/brand-automation/internal/http/middleware"
	"github.com/Rahulbariki/brand-automation/internal/service"
)

type BillingHandler struct {
	billingService service.BillingService
}

func NewBillingHandler(billingService service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	url, err := h.billingService.CreateCheckoutSession(ctx, middleware.GetUser(ctx), req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlan):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan"})
		case errors.Is(err, service.ErrBillingNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "billing not configured"})
		default:
			slog.ErrorContext(ctx, "checkout session failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout session failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkout_url": url})
}
