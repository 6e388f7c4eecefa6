package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/internal/http/dto"
	"github.com/Rahulbariki/brand-automation/internal/http/middleware"
	"github.com/Rahulbariki/brand-automation/internal/service"
)

const stateCookieName = "brandforge_oauth_state"

type AuthHandler struct {
	authService  service.AuthService
	frontendURL  string
	isProduction bool
}

func NewAuthHandler(authService service.AuthService, frontendURL string, isProduction bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		frontendURL:  frontendURL,
		isProduction: isProduction,
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, signed, err := h.authService.Signup(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		slog.ErrorContext(c.Request.Context(), "signup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{Token: signed, User: user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, signed, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		case errors.Is(err, service.ErrUserInactive):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account deactivated"})
		default:
			slog.ErrorContext(c.Request.Context(), "login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Token: signed, User: user})
}

// HostedLogin redirects to the hosted auth provider.
func (h *AuthHandler) HostedLogin(c *gin.Context) {
	state, err := generateState()
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate login"})
		return
	}

	authURL, err := h.authService.GetAuthorizationURL(state)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to get authorization URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate login"})
		return
	}

	c.SetCookie(stateCookieName, state, 600, "/", "", h.isProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (h *AuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	code := c.Query("code")
	state := c.Query("state")
	if errParam := c.Query("error"); errParam != "" {
		slog.WarnContext(ctx, "oauth error", "error", errParam)
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"?auth_error="+errParam)
		return
	}

	storedState, err := c.Cookie(stateCookieName)
	if err != nil || state != storedState {
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"?auth_error=invalid_state")
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", h.isProduction, true)

	if code == "" {
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"?auth_error=no_code")
		return
	}

	_, signed, err := h.authService.HandleCallback(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to handle callback", "error", err)
		if errors.Is(err, service.ErrInvalidCode) {
			c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"?auth_error=invalid_code")
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"?auth_error=callback_failed")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/dashboard#token="+signed)
}

// Me returns the authenticated user with their resolved entitlement.
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"user":        middleware.GetUser(ctx),
		"entitlement": middleware.GetEntitlement(ctx),
	})
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
