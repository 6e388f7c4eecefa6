package webhook

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/service"
)

const signatureHeader = "X-Billing-Signature"

type BillingWebhookHandler struct {
	billingService service.BillingService
}

func NewBillingWebhookHandler(billingService service.BillingService) *BillingWebhookHandler {
	return &BillingWebhookHandler{billingService: billingService}
}

// HandleEvent verifies the provider's HMAC signature and applies the event.
// Unverifiable requests get a 400 with no detail about what failed.
func (h *BillingWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	sig := c.GetHeader(signatureHeader)
	if sig == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing signature"})
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	event, err := h.billingService.VerifyAndParse(payload, sig, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrBillingNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "billing not configured"})
			return
		}
		slog.WarnContext(ctx, "rejected billing webhook", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	if err := h.billingService.HandleEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "billing event failed", "error", err, "type", event.Type)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "event processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
