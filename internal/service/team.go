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

var (
	ErrTeamExists      = errors.New("user already owns a team")
	ErrTeamNotFound    = errors.New("team not found")
	ErrAlreadyMember   = errors.New("user already in a team")
	ErrMemberNotFound  = errors.New("member not found")
	ErrInviteeNotFound = errors.New("no account with this email")
)

// TeamView is the "my team" response: the owner sees the roster, a member
// sees the team and their own role.
type TeamView struct {
	IsOwner    bool                     `json:"is_owner"`
	TeamID     int64                    `json:"team_id"`
	TeamName   string                   `json:"team_name"`
	Members    []model.TeamMemberDetail `json:"members,omitempty"`
	OwnerEmail string                   `json:"owner_email,omitempty"`
	Role       model.TeamRole           `json:"role,omitempty"`
}

type TeamService interface {
	Create(ctx context.Context, owner *model.User, name string) (*model.Team, error)
	Invite(ctx context.Context, owner *model.User, email string, role model.TeamRole) (*model.TeamMember, error)
	RemoveMember(ctx context.Context, owner *model.User, memberUserID int64) error
	MyTeam(ctx context.Context, user *model.User) (*TeamView, error)
}

type teamService struct {
	teamStore store.TeamStore
	userStore store.UserStore
}

func NewTeamService(teamStore store.TeamStore, userStore store.UserStore) TeamService {
	return &teamService{
		teamStore: teamStore,
		userStore: userStore,
	}
}

func (s *teamService) Create(ctx context.Context, owner *model.User, name string) (*model.Team, error) {
	if _, err := s.teamStore.GetByOwner(ctx, owner.ID); err == nil {
		return nil, ErrTeamExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking existing team: %w", err)
	}

	team := &model.Team{
		ID:          id.New(),
		OwnerUserID: owner.ID,
		Name:        name,
	}
	if err := s.teamStore.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("creating team: %w", err)
	}

	slog.InfoContext(ctx, "team created", "team_id", team.ID, "owner_id", owner.ID)
	return team, nil
}

func (s *teamService) Invite(ctx context.Context, owner *model.User, email string, role model.TeamRole) (*model.TeamMember, error) {
	team, err := s.teamStore.GetByOwner(ctx, owner.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("fetching team: %w", err)
	}

	invitee, err := s.userStore.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteeNotFound
		}
		return nil, fmt.Errorf("fetching invitee: %w", err)
	}

	// membership is exclusive, even across teams
	if _, err := s.teamStore.GetMembership(ctx, invitee.ID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking membership: %w", err)
	}

	if role == "" {
		role = model.TeamRoleViewer
	}
	member := &model.TeamMember{
		ID:     id.New(),
		TeamID: team.ID,
		UserID: invitee.ID,
		Role:   role,
	}
	if err := s.teamStore.AddMember(ctx, member); err != nil {
		return nil, fmt.Errorf("adding member: %w", err)
	}

	slog.InfoContext(ctx, "team member added",
		"team_id", team.ID,
		"member_id", invitee.ID,
		"role", role,
	)
	return member, nil
}

func (s *teamService) RemoveMember(ctx context.Context, owner *model.User, memberUserID int64) error {
	team, err := s.teamStore.GetByOwner(ctx, owner.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("fetching team: %w", err)
	}

	if err := s.teamStore.RemoveMember(ctx, team.ID, memberUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("removing member: %w", err)
	}

	slog.InfoContext(ctx, "team member removed", "team_id", team.ID, "member_id", memberUserID)
	return nil
}

func (s *teamService) MyTeam(ctx context.Context, user *model.User) (*TeamView, error) {
	team, err := s.teamStore.GetByOwner(ctx, user.ID)
	if err == nil {
		members, err := s.teamStore.ListMembers(ctx, team.ID)
		if err != nil {
			return nil, fmt.Errorf("listing members: %w", err)
		}
		return &TeamView{
			IsOwner:  true,
			TeamID:   team.ID,
			TeamName: team.Name,
			Members:  members,
		}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("fetching owned team: %w", err)
	}

	membership, err := s.teamStore.GetMembership(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("fetching membership: %w", err)
	}

	team, err = s.teamStore.GetByID(ctx, membership.TeamID)
	if err != nil {
		return nil, fmt.Errorf("fetching team: %w", err)
	}
	owner, err := s.userStore.GetByID(ctx, team.OwnerUserID)
	if err != nil {
		return nil, fmt.Errorf("fetching owner: %w", err)
	}

	return &TeamView{
		IsOwner:    false,
		TeamID:     team.ID,
		TeamName:   team.Name,
		OwnerEmail: owner.Email,
		Role:       membership.Role,
	}, nil
}
