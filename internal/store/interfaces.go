package store

import (
	"context"
	"errors"
	"time"

	"github.com/Rahulbariki/brand-automation/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*model.User, error)
	GetByBillingCustomerID(ctx context.Context, customerID string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	List(ctx context.Context, limit int32) ([]model.User, error)
	Delete(ctx context.Context, id int64) error
}

// UsageStore records metered requests and answers rolling-window reads.
// Rows are append-only.
type UsageStore interface {
	Record(ctx context.Context, log *model.UsageLog) error
	CountSince(ctx context.Context, userID int64, since time.Time) (int64, error)
	ListRecent(ctx context.Context, limit int32) ([]model.UsageLog, error)
}

// ContentStore archives generated artifacts for audit/history.
type ContentStore interface {
	Create(ctx context.Context, content *model.GeneratedContent) error
	ListByUser(ctx context.Context, userID int64, limit int32) ([]model.GeneratedContent, error)
	ListRecent(ctx context.Context, limit int32) ([]model.GeneratedContent, error)
}

// TeamStore defines the contract for team and membership data access
type TeamStore interface {
	GetByID(ctx context.Context, id int64) (*model.Team, error)
	GetByOwner(ctx context.Context, ownerUserID int64) (*model.Team, error)
	Create(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id int64) error

	GetMembership(ctx context.Context, userID int64) (*model.TeamMember, error)
	GetMember(ctx context.Context, teamID, userID int64) (*model.TeamMember, error)
	AddMember(ctx context.Context, member *model.TeamMember) error
	RemoveMember(ctx context.Context, teamID, userID int64) error
	ListMembers(ctx context.Context, teamID int64) ([]model.TeamMemberDetail, error)
}

// StatsStore aggregates counters for the admin dashboard.
type StatsStore interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}

// GrantStore defines the contract for admin grant data access
type GrantStore interface {
	GetByEmail(ctx context.Context, email string) (*model.AdminGrant, error)
	Create(ctx context.Context, grant *model.AdminGrant) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.AdminGrant, error)
}

// WorkspaceStore defines the contract for brand workspace data access
type WorkspaceStore interface {
	GetByID(ctx context.Context, id int64) (*model.Workspace, error)
	Create(ctx context.Context, ws *model.Workspace) error
	Update(ctx context.Context, ws *model.Workspace) error
	Delete(ctx context.Context, id int64) error // cascades to assets and activities
	ListByUser(ctx context.Context, userID int64) ([]model.Workspace, error)

	AddAsset(ctx context.Context, asset *model.WorkspaceAsset) error
	ListAssets(ctx context.Context, workspaceID int64) ([]model.WorkspaceAsset, error)
	AddActivity(ctx context.Context, act *model.WorkspaceActivity) error
	ListActivities(ctx context.Context, workspaceID int64, limit int32) ([]model.WorkspaceActivity, error)
}
