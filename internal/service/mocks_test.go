package service_test

import (
	"context"
	"time"

	"github.com/Rahulbariki/brand-automation/internal/genai"
	"github.com/Rahulbariki/brand-automation/internal/model"
	"github.com/Rahulbariki/brand-automation/internal/store"
)

type mockUserStore struct {
	getByIDFn                func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn             func(ctx context.Context, email string) (*model.User, error)
	getByExternalIDFn        func(ctx context.Context, externalID string) (*model.User, error)
	getByBillingCustomerIDFn func(ctx context.Context, customerID string) (*model.User, error)
	createFn                 func(ctx context.Context, user *model.User) error
	updateFn                 func(ctx context.Context, user *model.User) error
	listFn                   func(ctx context.Context, limit int32) ([]model.User, error)
	deleteFn                 func(ctx context.Context, id int64) error
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	if m.getByExternalIDFn != nil {
		return m.getByExternalIDFn(ctx, externalID)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByBillingCustomerID(ctx context.Context, customerID string) (*model.User, error) {
	if m.getByBillingCustomerIDFn != nil {
		return m.getByBillingCustomerIDFn(ctx, customerID)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) List(ctx context.Context, limit int32) ([]model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockTeamStore struct {
	getByIDFn       func(ctx context.Context, id int64) (*model.Team, error)
	getByOwnerFn    func(ctx context.Context, ownerUserID int64) (*model.Team, error)
	createFn        func(ctx context.Context, team *model.Team) error
	deleteFn        func(ctx context.Context, id int64) error
	getMembershipFn func(ctx context.Context, userID int64) (*model.TeamMember, error)
	getMemberFn     func(ctx context.Context, teamID, userID int64) (*model.TeamMember, error)
	addMemberFn     func(ctx context.Context, member *model.TeamMember) error
	removeMemberFn  func(ctx context.Context, teamID, userID int64) error
	listMembersFn   func(ctx context.Context, teamID int64) ([]model.TeamMemberDetail, error)
}

func (m *mockTeamStore) GetByID(ctx context.Context, id int64) (*model.Team, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockTeamStore) GetByOwner(ctx context.Context, ownerUserID int64) (*model.Team, error) {
	if m.getByOwnerFn != nil {
		return m.getByOwnerFn(ctx, ownerUserID)
	}
	return nil, store.ErrNotFound
}

func (m *mockTeamStore) Create(ctx context.Context, team *model.Team) error {
	if m.createFn != nil {
		return m.createFn(ctx, team)
	}
	return nil
}

func (m *mockTeamStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTeamStore) GetMembership(ctx context.Context, userID int64) (*model.TeamMember, error) {
	if m.getMembershipFn != nil {
		return m.getMembershipFn(ctx, userID)
	}
	return nil, store.ErrNotFound
}

func (m *mockTeamStore) GetMember(ctx context.Context, teamID, userID int64) (*model.TeamMember, error) {
	if m.getMemberFn != nil {
		return m.getMemberFn(ctx, teamID, userID)
	}
	return nil, store.ErrNotFound
}

func (m *mockTeamStore) AddMember(ctx context.Context, member *model.TeamMember) error {
	if m.addMemberFn != nil {
		return m.addMemberFn(ctx, member)
	}
	return nil
}

func (m *mockTeamStore) RemoveMember(ctx context.Context, teamID, userID int64) error {
	if m.removeMemberFn != nil {
		return m.removeMemberFn(ctx, teamID, userID)
	}
	return nil
}

func (m *mockTeamStore) ListMembers(ctx context.Context, teamID int64) ([]model.TeamMemberDetail, error) {
	if m.listMembersFn != nil {
		return m.listMembersFn(ctx, teamID)
	}
	return nil, nil
}

type mockGrantStore struct {
	getByEmailFn func(ctx context.Context, email string) (*model.AdminGrant, error)
	createFn     func(ctx context.Context, grant *model.AdminGrant) error
	deleteFn     func(ctx context.Context, id int64) error
	listFn       func(ctx context.Context) ([]model.AdminGrant, error)
}

func (m *mockGrantStore) GetByEmail(ctx context.Context, email string) (*model.AdminGrant, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockGrantStore) Create(ctx context.Context, grant *model.AdminGrant) error {
	if m.createFn != nil {
		return m.createFn(ctx, grant)
	}
	return nil
}

func (m *mockGrantStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockGrantStore) List(ctx context.Context) ([]model.AdminGrant, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockUsageStore struct {
	recordFn     func(ctx context.Context, log *model.UsageLog) error
	countSinceFn func(ctx context.Context, userID int64, since time.Time) (int64, error)
	listRecentFn func(ctx context.Context, limit int32) ([]model.UsageLog, error)
}

func (m *mockUsageStore) Record(ctx context.Context, log *model.UsageLog) error {
	if m.recordFn != nil {
		return m.recordFn(ctx, log)
	}
	return nil
}

func (m *mockUsageStore) CountSince(ctx context.Context, userID int64, since time.Time) (int64, error) {
	if m.countSinceFn != nil {
		return m.countSinceFn(ctx, userID, since)
	}
	return 0, nil
}

func (m *mockUsageStore) ListRecent(ctx context.Context, limit int32) ([]model.UsageLog, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, limit)
	}
	return nil, nil
}

type mockContentStore struct {
	createFn     func(ctx context.Context, content *model.GeneratedContent) error
	listByUserFn func(ctx context.Context, userID int64, limit int32) ([]model.GeneratedContent, error)
	listRecentFn func(ctx context.Context, limit int32) ([]model.GeneratedContent, error)
}

func (m *mockContentStore) Create(ctx context.Context, content *model.GeneratedContent) error {
	if m.createFn != nil {
		return m.createFn(ctx, content)
	}
	return nil
}

func (m *mockContentStore) ListByUser(ctx context.Context, userID int64, limit int32) ([]model.GeneratedContent, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockContentStore) ListRecent(ctx context.Context, limit int32) ([]model.GeneratedContent, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, limit)
	}
	return nil, nil
}

type mockWorkspaceStore struct {
	getByIDFn        func(ctx context.Context, id int64) (*model.Workspace, error)
	createFn         func(ctx context.Context, ws *model.Workspace) error
	updateFn         func(ctx context.Context, ws *model.Workspace) error
	deleteFn         func(ctx context.Context, id int64) error
	listByUserFn     func(ctx context.Context, userID int64) ([]model.Workspace, error)
	addAssetFn       func(ctx context.Context, asset *model.WorkspaceAsset) error
	listAssetsFn     func(ctx context.Context, workspaceID int64) ([]model.WorkspaceAsset, error)
	addActivityFn    func(ctx context.Context, act *model.WorkspaceActivity) error
	listActivitiesFn func(ctx context.Context, workspaceID int64, limit int32) ([]model.WorkspaceActivity, error)
}

func (m *mockWorkspaceStore) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockWorkspaceStore) Create(ctx context.Context, ws *model.Workspace) error {
	if m.createFn != nil {
		return m.createFn(ctx, ws)
	}
	return nil
}

func (m *mockWorkspaceStore) Update(ctx context.Context, ws *model.Workspace) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, ws)
	}
	return nil
}

func (m *mockWorkspaceStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockWorkspaceStore) ListByUser(ctx context.Context, userID int64) ([]model.Workspace, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockWorkspaceStore) AddAsset(ctx context.Context, asset *model.WorkspaceAsset) error {
	if m.addAssetFn != nil {
		return m.addAssetFn(ctx, asset)
	}
	return nil
}

func (m *mockWorkspaceStore) ListAssets(ctx context.Context, workspaceID int64) ([]model.WorkspaceAsset, error) {
	if m.listAssetsFn != nil {
		return m.listAssetsFn(ctx, workspaceID)
	}
	return nil, nil
}

func (m *mockWorkspaceStore) AddActivity(ctx context.Context, act *model.WorkspaceActivity) error {
	if m.addActivityFn != nil {
		return m.addActivityFn(ctx, act)
	}
	return nil
}

func (m *mockWorkspaceStore) ListActivities(ctx context.Context, workspaceID int64, limit int32) ([]model.WorkspaceActivity, error) {
	if m.listActivitiesFn != nil {
		return m.listActivitiesFn(ctx, workspaceID, limit)
	}
	return nil, nil
}

type mockLLM struct {
	chatFn     func(ctx context.Context, req genai.ChatRequest, result any) (*genai.ChatResponse, error)
	chatTextFn func(ctx context.Context, req genai.ChatRequest) (string, *genai.ChatResponse, error)
}

func (m *mockLLM) Chat(ctx context.Context, req genai.ChatRequest, result any) (*genai.ChatResponse, error) {
	if m.chatFn != nil {
		return m.chatFn(ctx, req, result)
	}
	return &genai.ChatResponse{}, nil
}

func (m *mockLLM) ChatText(ctx context.Context, req genai.ChatRequest) (string, *genai.ChatResponse, error) {
	if m.chatTextFn != nil {
		return m.chatTextFn(ctx, req)
	}
	return "", &genai.ChatResponse{}, nil
}

func (m *mockLLM) Model() string { return "mock-model" }

type mockImageGenerator struct {
	generateFn func(ctx context.Context, prompt string) (string, error)
}

func (m *mockImageGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, prompt)
	}
	return "data:image/png;base64,AAAA", nil
}

type mockStatsStore struct {
	dashboardFn func(ctx context.Context) (*model.DashboardStats, error)
}

func (m *mockStatsStore) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx)
	}
	return &model.DashboardStats{}, nil
}
