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

// Entitlement is the resolved plan a request is authorized under. When the
// plan is inherited from a team, BillingUserID points at the team owner whose
// quota absorbs the usage.
type Entitlement struct {
	Plan          model.Plan `json:"plan"`
	Inherited     bool       `json:"inherited"`
	BillingUserID int64      `json:"billing_user_id"`
}

type PolicyService interface {
	// ApplyGrants reconciles a user's stored flags against the admin grant
	// table and writes only on drift. Returns the possibly updated user.
	ApplyGrants(ctx context.Context, user *model.User) (*model.User, error)
	// Entitlement resolves the user's effective plan, walking team
	// membership for enterprise inheritance.
	Entitlement(ctx context.Context, user *model.User) (Entitlement, error)
	// SeedGrants bootstraps grants for the configured admin emails.
	SeedGrants(ctx context.Context, emails []string) error
}

type policyService struct {
	userStore  store.UserStore
	teamStore  store.TeamStore
	grantStore store.GrantStore
}

func NewPolicyService(userStore store.UserStore, teamStore store.TeamStore, grantStore store.GrantStore) PolicyService {
	return &policyService{
		userStore:  userStore,
		teamStore:  teamStore,
		grantStore: grantStore,
	}
}

func (s *policyService) ApplyGrants(ctx context.Context, user *model.User) (*model.User, error) {
	_, err := s.grantStore.GetByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return user, nil
		}
		return nil, fmt.Errorf("checking admin grant: %w", err)
	}

	if user.IsAdmin && user.Role == "admin" && user.SubscriptionPlan == model.PlanEnterprise {
		return user, nil
	}

	user.IsAdmin = true
	user.Role = "admin"
	user.SubscriptionPlan = model.PlanEnterprise
	user.SubscriptionStatus = "active"
	user.PlanSource = model.PlanSourceAdmin
	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("applying admin grant: %w", err)
	}

	slog.InfoContext(ctx, "admin grant applied", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *policyService) Entitlement(ctx context.Context, user *model.User) (Entitlement, error) {
	own := Entitlement{
		Plan:          user.SubscriptionPlan,
		BillingUserID: user.ID,
	}
	// only a verifiable own plan short-circuits: a stored enterprise plan
	// without a real source still walks the team for proper attribution
	if user.HasVerifiableEnterprise() {
		return own, nil
	}

	membership, err := s.teamStore.GetMembership(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return own, nil
		}
		return Entitlement{}, fmt.Errorf("checking team membership: %w", err)
	}

	team, err := s.teamStore.GetByID(ctx, membership.TeamID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return own, nil
		}
		return Entitlement{}, fmt.Errorf("fetching team: %w", err)
	}

	owner, err := s.userStore.GetByID(ctx, team.OwnerUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return own, nil
		}
		return Entitlement{}, fmt.Errorf("fetching team owner: %w", err)
	}

	// inheritance requires the owner's plan to be verifiably enterprise;
	// an owner who only inherits cannot re-grant
	if !owner.HasVerifiableEnterprise() {
		return own, nil
	}

	return Entitlement{
		Plan:          model.PlanEnterprise,
		Inherited:     true,
		BillingUserID: owner.ID,
	}, nil
}

func (s *policyService) SeedGrants(ctx context.Context, emails []string) error {
	for _, email := range emails {
		grant := &model.AdminGrant{
			ID:        id.New(),
			Email:     normalizeEmail(email),
			GrantedBy: "bootstrap",
			Note:      "seeded from environment",
		}
		if err := s.grantStore.Create(ctx, grant); err != nil {
			return fmt.Errorf("seeding grant for %s: %w", email, err)
		}
	}
	return nil
}
