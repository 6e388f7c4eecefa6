package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/http/handler"
	"github.com/Rahulbariki/brand-automation/internal/http/middleware"
)

func BrandingRouter(rg *gin.RouterGroup, h *handler.BrandingHandler) {
	rg.POST("/generate-brand", h.GenerateBrand)
	rg.POST("/generate-content", h.GenerateContent)
	rg.POST("/analyze-sentiment", h.AnalyzeSentiment)
	rg.POST("/get-colors", h.GetColors)
	rg.POST("/chat", h.Chat)
	rg.POST("/generate-tagline", h.GenerateTagline)
	rg.POST("/generate-pitch", h.GeneratePitch)
	rg.POST("/generate-investor-email", h.GenerateInvestorEmail)

	// logo generation is the expensive path
	rg.POST("/generate-logo", middleware.RequirePro(), h.GenerateLogo)
}
