package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rahulbariki/brand-automation/common/logger"
	"github.com/Rahulbariki/brand-automation/internal/model"
	"github.com/Rahulbariki/brand-automation/internal/service"
	"github.com/Rahulbariki/brand-automation/internal/token"
)

type contextKey string

const (
	userContextKey        contextKey = "user"
	entitlementContextKey contextKey = "entitlement"
)

// RequireAuth authenticates the bearer token, reconciles admin grants, and
// resolves the effective entitlement before the handler runs.
func RequireAuth(authService service.AuthService, policyService service.PolicyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		ctx := c.Request.Context()
		user, err := authService.Resolve(ctx, raw)
		if err != nil {
			switch {
			case errors.Is(err, token.ErrInvalidToken):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			case errors.Is(err, service.ErrUserInactive):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account deactivated"})
			default:
				slog.ErrorContext(ctx, "failed to resolve user", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
			}
			return
		}

		user, err = policyService.ApplyGrants(ctx, user)
		if err != nil {
			slog.ErrorContext(ctx, "failed to apply grants", "error", err, "user_id", user.ID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
			return
		}

		ent, err := policyService.Entitlement(ctx, user)
		if err != nil {
			slog.ErrorContext(ctx, "failed to resolve entitlement", "error", err, "user_id", user.ID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
			return
		}

		ctx = WithUser(ctx, user)
		ctx = WithEntitlement(ctx, ent)
		ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(user.ID)})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequirePro gates endpoints that need a paid plan. Admins always pass.
func RequirePro() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c.Request.Context())
		ent := GetEntitlement(c.Request.Context())
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if user.IsAdmin || ent.Plan == model.PlanPro || ent.Plan == model.PlanEnterprise {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "pro plan required"})
	}
}

// RequireEnterprise gates team mutation. Inherited enterprise does not
// qualify: only a verifiable own plan (or admin) may manage a team.
func RequireEnterprise() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c.Request.Context())
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if user.IsAdmin || user.HasVerifiableEnterprise() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "enterprise plan required"})
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c.Request.Context())
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// WithUser returns a context carrying the authenticated user.
// RequireAuth installs it on every authenticated request.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// WithEntitlement returns a context carrying the resolved entitlement.
func WithEntitlement(ctx context.Context, ent service.Entitlement) context.Context {
	return context.WithValue(ctx, entitlementContextKey, ent)
}

func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

func GetEntitlement(ctx context.Context) service.Entitlement {
	ent, _ := ctx.Value(entitlementContextKey).(service.Entitlement)
	return ent
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(raw)
}
