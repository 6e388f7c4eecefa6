package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/http/middleware"
	"github.com/Rahulbariki/brand-automation/internal/service"
)

type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

func NewWorkspaceHandler(workspaceService service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

func (h *WorkspaceHandler) Wizard(c *gin.Context) {
	var req service.WizardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	ws, err := h.workspaceService.Wizard(ctx, middleware.GetUser(ctx), req)
	if err != nil {
		slog.ErrorContext(ctx, "wizard failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "workspace creation failed"})
		return
	}

	c.JSON(http.StatusCreated, ws)
}

func (h *WorkspaceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	workspaces, err := h.workspaceService.List(ctx, middleware.GetUser(ctx))
	if err != nil {
		slog.ErrorContext(ctx, "workspace list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "workspace list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workspaces": workspaces})
}

func (h *WorkspaceHandler) Get(c *gin.Context) {
	id, ok := h.workspaceID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	detail, err := h.workspaceService.Get(ctx, middleware.GetUser(ctx), id)
	if err != nil {
		h.fail(c, err, "workspace fetch failed")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *WorkspaceHandler) Delete(c *gin.Context) {
	id, ok := h.workspaceID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.workspaceService.Delete(ctx, middleware.GetUser(ctx), id); err != nil {
		h.fail(c, err, "workspace deletion failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "workspace deleted"})
}

type assistantRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

func (h *WorkspaceHandler) Assistant(c *gin.Context) {
	id, ok := h.workspaceID(c)
	if !ok {
		return
	}
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	reply, err := h.workspaceService.Assistant(ctx, middleware.GetUser(ctx), id, req.Prompt)
	if err != nil {
		h.fail(c, err, "assistant failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

type generateAssetRequest struct {
	AssetType string `json:"asset_type" binding:"required"`
}

func (h *WorkspaceHandler) GenerateAsset(c *gin.Context) {
	id, ok := h.workspaceID(c)
	if !ok {
		return
	}
	var req generateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	asset, err := h.workspaceService.GenerateAsset(ctx, middleware.GetUser(ctx), id, req.AssetType)
	if err != nil {
		h.fail(c, err, "asset generation failed")
		return
	}
	c.JSON(http.StatusCreated, asset)
}

func (h *WorkspaceHandler) Analyze(c *gin.Context) {
	id, ok := h.workspaceID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	score, err := h.workspaceService.AnalyzeHealth(ctx, middleware.GetUser(ctx), id)
	if err != nil {
		h.fail(c, err, "health analysis failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"health_score": score})
}

func (h *WorkspaceHandler) ExportZip(c *gin.Context) {
	id, ok := h.workspaceID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	archive, filename, err := h.workspaceService.ExportZip(ctx, middleware.GetUser(ctx), id)
	if err != nil {
		h.fail(c, err, "export failed")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/zip", archive)
}

func (h *WorkspaceHandler) workspaceID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workspace id"})
		return 0, false
	}
	return id, true
}

func (h *WorkspaceHandler) fail(c *gin.Context, err error, msg string) {
	if errors.Is(err, service.ErrWorkspaceNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
		return
	}
	slog.ErrorContext(c.Request.Context(), msg, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
