package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/http/middleware"
	"github.com/Rahulbariki/brand-automation/internal/service"
)

type BrandingHandler struct {
	brandingService service.BrandingService
	usageService    service.UsageService
}

func NewBrandingHandler(brandingService service.BrandingService, usageService service.UsageService) *BrandingHandler {
	return &BrandingHandler{
		brandingService: brandingService,
		usageService:    usageService,
	}
}

func (h *BrandingHandler) GenerateBrand(c *gin.Context) {
	var req service.BrandNamesInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)
	names, tokens, err := h.brandingService.GenerateBrandNames(ctx, user.ID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		return
	}

	h.meter(c, "generate-brand", tokens)
	c.JSON(http.StatusOK, gin.H{"names": names})
}

func (h *BrandingHandler) GenerateContent(c *gin.Context) {
	var req service.ContentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)
	res, err := h.brandingService.GenerateContent(ctx, user.ID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		return
	}

	h.meter(c, "generate-content", res.Tokens)
	c.JSON(http.StatusOK, gin.H{"content": res.Text})
}

func (h *BrandingHandler) AnalyzeSentiment(c *gin.Context) {
	var req service.SentimentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)
	result, tokens, err := h.brandingService.AnalyzeSentiment(ctx, user.ID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	h.meter(c, "analyze-sentiment", tokens)
	c.JSON(http.StatusOK, result)
}

type colorsRequest struct {
	Industry string `json:"industry" binding:"required"`
	Tone     string `json:"tone" binding:"required"`
}

func (h *BrandingHandler) GetColors(c *gin.Context) {
	var req colorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)
	colors, tokens, err := h.brandingService.GetColors(ctx, user.ID, req.Industry, req.Tone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		return
	}

	h.meter(c, "get-colors", tokens)
	c.JSON(http.StatusOK, gin.H{"colors": colors})
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *BrandingHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)
	res, err := h.brandingService.Chat(ctx, user.ID, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chat failed"})
		return
	}

	h.meter(c, "chat", res.Tokens)
	c.JSON(http.StatusOK, gin.H{"reply": res.Text})
}

func (h *BrandingHandler) GenerateLogo(c *gin.Context) {
	var req service.LogoInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)
	result, tokens, err := h.brandingService.GenerateLogo(ctx, user.ID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		return
	}

	h.meter(c, "generate-logo", tokens)
	c.JSON(http.StatusOK, result)
}

type taglineRequest struct {
	BrandName string `json:"brand_name" binding:"required"`
	Industry  string `json:"industry"`
}

func (h *BrandingHandler) GenerateTagline(c *gin.Context) {
	var req taglineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)
	res, err := h.brandingService.GenerateTagline(ctx, user.ID, req.BrandName, req.Industry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		return
	}

	h.meter(c, "generate-tagline", res.Tokens)
	c.JSON(http.StatusOK, gin.H{"tagline": res.Text})
}

func (h *BrandingHandler) GeneratePitch(c *gin.Context) {
	var req service.PitchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)
	res, err := h.brandingService.GeneratePitch(ctx, user.ID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		return
	}

	h.meter(c, "generate-pitch", res.Tokens)
	c.JSON(http.StatusOK, gin.H{"pitch": res.Text})
}

func (h *BrandingHandler) GenerateInvestorEmail(c *gin.Context) {
	var req service.InvestorEmailInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)
	res, err := h.brandingService.GenerateInvestorEmail(ctx, user.ID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		return
	}

	h.meter(c, "generate-investor-email", res.Tokens)
	c.JSON(http.StatusOK, gin.H{"email": res.Text})
}

// meter records one billable request against the entitled billing owner.
// The generation already returned to the caller's benefit, so metering
// failures are logged and swallowed.
func (h *BrandingHandler) meter(c *gin.Context, endpoint string, tokens *int) {
	ctx := c.Request.Context()
	if err := h.usageService.Record(ctx, middleware.GetEntitlement(ctx), endpoint, tokens); err != nil {
		slog.ErrorContext(ctx, "metering failed", "endpoint", endpoint, "error", err)
	}
}
