package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/http/dto"
	"github.com/Rahulbariki/brand-automation/internal/http/middleware"
	"github.com/Rahulbariki/brand-automation/internal/service"
)

type TeamHandler struct {
	teamService service.TeamService
}

func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	team, err := h.teamService.Create(ctx, middleware.GetUser(ctx), req.TeamName)
	if err != nil {
		if errors.Is(err, service.ErrTeamExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "you already own a team"})
			return
		}
		slog.ErrorContext(ctx, "team creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "team creation failed"})
		return
	}

	c.JSON(http.StatusCreated, team)
}

func (h *TeamHandler) Invite(c *gin.Context) {
	var req dto.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	member, err := h.teamService.Invite(ctx, middleware.GetUser(ctx), req.Email, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "create a team first"})
		case errors.Is(err, service.ErrInviteeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no account with this email"})
		case errors.Is(err, service.ErrAlreadyMember):
			c.JSON(http.StatusConflict, gin.H{"error": "user already belongs to a team"})
		default:
			slog.ErrorContext(ctx, "invite failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "invite failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, member)
}

func (h *TeamHandler) RemoveMember(c *gin.Context) {
	memberID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	ctx := c.Request.Context()
	if err := h.teamService.RemoveMember(ctx, middleware.GetUser(ctx), memberID); err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		case errors.Is(err, service.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		default:
			slog.ErrorContext(ctx, "member removal failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "member removal failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "member removed"})
}

func (h *TeamHandler) MyTeam(c *gin.Context) {
	ctx := c.Request.Context()
	view, err := h.teamService.MyTeam(ctx, middleware.GetUser(ctx))
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			c.JSON(http.StatusOK, gin.H{"team": nil})
			return
		}
		slog.ErrorContext(ctx, "team lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "team lookup failed"})
		return
	}

	c.JSON(http.StatusOK, view)
}
