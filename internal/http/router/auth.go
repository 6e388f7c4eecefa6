package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/http/handler"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler, requireAuth gin.HandlerFunc) {
	rg.POST("/signup", h.Signup)
	rg.POST("/login", h.Login)
	rg.GET("/hosted-login", h.HostedLogin)
	rg.GET("/callback", h.Callback)
	rg.GET("/me", requireAuth, h.Me)
}
