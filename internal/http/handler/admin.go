package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/http/dto"
	"github.com/Rahulbariki/brand-automation/internal/http/middleware"
	"github.com/Rahulbariki/brand-automation/internal/model"
	"github.com/Rahulbariki/brand-automation/internal/service"
	"github.com/Rahulbariki/brand-automation/internal/store"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := h.adminService.ListUsers(ctx, queryLimit(c, 100))
	if err != nil {
		slog.ErrorContext(ctx, "user list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) ToggleAdmin(c *gin.Context) {
	h.toggle(c, h.adminService.ToggleAdmin)
}

func (h *AdminHandler) ToggleActive(c *gin.Context) {
	h.toggle(c, h.adminService.ToggleActive)
}

func (h *AdminHandler) UsageLogs(c *gin.Context) {
	ctx := c.Request.Context()
	logs, err := h.adminService.UsageLogs(ctx, queryLimit(c, 50))
	if err != nil {
		slog.ErrorContext(ctx, "usage log list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "usage log list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (h *AdminHandler) GeneratedContent(c *gin.Context) {
	ctx := c.Request.Context()
	content, err := h.adminService.GeneratedContent(ctx, queryLimit(c, 50))
	if err != nil {
		slog.ErrorContext(ctx, "content list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "content list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := h.adminService.Dashboard(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "dashboard stats failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard stats failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListGrants(c *gin.Context) {
	ctx := c.Request.Context()
	grants, err := h.adminService.ListGrants(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "grant list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "grant list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"grants": grants})
}

func (h *AdminHandler) CreateGrant(c *gin.Context) {
	var req dto.CreateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	grant, err := h.adminService.CreateGrant(ctx, middleware.GetUser(ctx), req.Email, req.Note)
	if err != nil {
		slog.ErrorContext(ctx, "grant creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "grant creation failed"})
		return
	}
	c.JSON(http.StatusCreated, grant)
}

func (h *AdminHandler) RevokeGrant(c *gin.Context) {
	grantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid grant id"})
		return
	}

	ctx := c.Request.Context()
	if err := h.adminService.RevokeGrant(ctx, grantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "grant not found"})
			return
		}
		slog.ErrorContext(ctx, "grant revocation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "grant revocation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "grant revoked"})
}

func (h *AdminHandler) toggle(c *gin.Context, fn func(ctx context.Context, userID int64) (*model.User, error)) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	ctx := c.Request.Context()
	user, err := fn(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.ErrorContext(ctx, "user update failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user update failed"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func queryLimit(c *gin.Context, fallback int32) int32 {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || limit <= 0 {
		return fallback
	}
	return int32(limit)
}
