package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/http/handler"
	"github.com/Rahulbariki/brand-automation/internal/http/handler/webhook"
)

func BillingRouter(rg *gin.RouterGroup, h *handler.BillingHandler, wh *webhook.BillingWebhookHandler, requireAuth gin.HandlerFunc) {
	rg.POST("/create-checkout-session", requireAuth, h.CreateCheckoutSession)

	// webhook calls come from the billing provider, authenticated by signature
	rg.POST("/webhook", wh.HandleEvent)
}
