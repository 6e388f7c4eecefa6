package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Rahulbariki/brand-automation/common/id"
	"github.com/Rahulbariki/brand-automation/internal/model"
	"github.com/Rahulbariki/brand-automation/internal/store"
)

var ErrUserNotFound = errors.New("user not found")

type AdminService interface {
	ListUsers(ctx context.Context, limit int32) ([]model.User, error)
	ToggleAdmin(ctx context.Context, userID int64) (*model.User, error)
	ToggleActive(ctx context.Context, userID int64) (*model.User, error)
	UsageLogs(ctx context.Context, limit int32) ([]model.UsageLog, error)
	GeneratedContent(ctx context.Context, limit int32) ([]model.GeneratedContent, error)
	Dashboard(ctx context.Context) (*model.DashboardStats, error)

	ListGrants(ctx context.Context) ([]model.AdminGrant, error)
	CreateGrant(ctx context.Context, actor *model.User, email, note string) (*model.AdminGrant, error)
	RevokeGrant(ctx context.Context, grantID int64) error
}

type adminService struct {
	userStore    store.UserStore
	usageStore   store.UsageStore
	contentStore store.ContentStore
	grantStore   store.GrantStore
	statsStore   store.StatsStore
}

func NewAdminService(
	userStore store.UserStore,
	usageStore store.UsageStore,
	contentStore store.ContentStore,
	grantStore store.GrantStore,
	statsStore store.StatsStore,
) AdminService {
	return &adminService{
		userStore:    userStore,
		usageStore:   usageStore,
		contentStore: contentStore,
		grantStore:   grantStore,
		statsStore:   statsStore,
	}
}

func (s *adminService) ListUsers(ctx context.Context, limit int32) ([]model.User, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.userStore.List(ctx, limit)
}

func (s *adminService) ToggleAdmin(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsAdmin = !user.IsAdmin
	if user.IsAdmin {
		user.Role = "admin"
	} else {
		user.Role = "user"
	}
	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	slog.InfoContext(ctx, "admin flag toggled", "user_id", user.ID, "is_admin", user.IsAdmin)
	return user, nil
}

func (s *adminService) ToggleActive(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	slog.InfoContext(ctx, "active flag toggled", "user_id", user.ID, "is_active", user.IsActive)
	return user, nil
}

func (s *adminService) UsageLogs(ctx context.Context, limit int32) ([]model.UsageLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.usageStore.ListRecent(ctx, limit)
}

func (s *adminService) GeneratedContent(ctx context.Context, limit int32) ([]model.GeneratedContent, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.contentStore.ListRecent(ctx, limit)
}

func (s *adminService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	return s.statsStore.Dashboard(ctx)
}

func (s *adminService) ListGrants(ctx context.Context) ([]model.AdminGrant, error) {
	return s.grantStore.List(ctx)
}

func (s *adminService) CreateGrant(ctx context.Context, actor *model.User, email, note string) (*model.AdminGrant, error) {
	grant := &model.AdminGrant{
		ID:        id.New(),
		Email:     normalizeEmail(email),
		GrantedBy: actor.Email,
		Note:      note,
	}
	if err := s.grantStore.Create(ctx, grant); err != nil {
		return nil, fmt.Errorf("creating grant: %w", err)
	}

	slog.InfoContext(ctx, "admin grant created",
		"email", grant.Email,
		"granted_by", actor.Email,
	)
	return grant, nil
}

func (s *adminService) RevokeGrant(ctx context.Context, grantID int64) error {
	if err := s.grantStore.Delete(ctx, grantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound
		}
		return fmt.Errorf("revoking grant: %w", err)
	}
	slog.InfoContext(ctx, "admin grant revoked", "grant_id", grantID)
	return nil
}

func (s *adminService) fetch(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}
