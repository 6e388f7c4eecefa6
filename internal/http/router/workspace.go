package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/http/handler"
)

func WorkspaceRouter(rg *gin.RouterGroup, h *handler.WorkspaceHandler) {
	rg.POST("/wizard", h.Wizard)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/assistant", h.Assistant)
	rg.POST("/:id/generate", h.GenerateAsset)
	rg.POST("/:id/analyze", h.Analyze)
	rg.GET("/:id/export/zip", h.ExportZip)
}
