package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Rahulbariki/brand-automation/core/config"
	"github.com/Rahulbariki/brand-automation/internal/http/handler"
	"github.com/Rahulbariki/brand-automation/internal/http/handler/webhook"
	"github.com/Rahulbariki/brand-automation/internal/http/middleware"
	"github.com/Rahulbariki/brand-automation/internal/service"
)

type RouterConfig struct {
	FrontendURL  string
	IsProduction bool
	RateLimit    config.RateLimitConfig
}

func SetupRoutes(router *gin.Engine, services *service.Services, redisClient *redis.Client, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authService := services.Auth()
	policyService := services.Policy()
	usageService := services.Usage()

	requireAuth := middleware.RequireAuth(authService, policyService)
	rateLimited := middleware.RateLimit(redisClient, cfg.RateLimit)

	api := router.Group("/api")
	{
		authHandler := handler.NewAuthHandler(authService, cfg.FrontendURL, cfg.IsProduction)
		AuthRouter(api.Group("/auth"), authHandler, requireAuth)

		brandingHandler := handler.NewBrandingHandler(services.Branding(), usageService)
		branding := api.Group("/branding", requireAuth, rateLimited, middleware.EnforceQuota(usageService))
		BrandingRouter(branding, brandingHandler)

		teamHandler := handler.NewTeamHandler(services.Teams())
		TeamRouter(api.Group("/teams", requireAuth), teamHandler)

		workspaceHandler := handler.NewWorkspaceHandler(services.Workspaces())
		WorkspaceRouter(api.Group("/workspaces", requireAuth), workspaceHandler)

		usageHandler := handler.NewUsageHandler(usageService)
		api.GET("/usage", requireAuth, usageHandler.Current)

		adminHandler := handler.NewAdminHandler(services.Admin())
		AdminRouter(api.Group("/admin", requireAuth, middleware.RequireAdmin()), adminHandler)

		billingHandler := handler.NewBillingHandler(services.Billing())
		billingWebhook := webhook.NewBillingWebhookHandler(services.Billing())
		BillingRouter(api.Group("/billing"), billingHandler, billingWebhook, requireAuth)
	}
}
