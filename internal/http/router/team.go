package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/http/handler"
	"github.com/Rahulbariki/brand-automation/internal/http/middleware"
)

func TeamRouter(rg *gin.RouterGroup, h *handler.TeamHandler) {
	rg.GET("/my-team", h.MyTeam)

	// only verifiable enterprise accounts can manage a team
	manage := middleware.RequireEnterprise()
	rg.POST("/create", manage, h.Create)
	rg.POST("/invite", manage, h.Invite)
	rg.DELETE("/members/:userID", manage, h.RemoveMember)
}
