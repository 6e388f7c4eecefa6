package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/http/handler"
)

func AdminRouter(rg *gin.RouterGroup, h *handler.AdminHandler) {
	rg.GET("/users", h.ListUsers)
	rg.PUT("/users/:id/toggle-admin", h.ToggleAdmin)
	rg.PUT("/users/:id/toggle-active", h.ToggleActive)
	rg.GET("/usage", h.UsageLogs)
	rg.GET("/generated", h.GeneratedContent)
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/grants", h.ListGrants)
	rg.POST("/grants", h.CreateGrant)
	rg.DELETE("/grants/:id", h.RevokeGrant)
}
