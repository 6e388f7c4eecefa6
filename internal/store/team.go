package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Rahulbariki/brand-automation/internal/model"
)

type teamStore struct {
	q Querier
}

func (s *teamStore) GetByID(ctx context.Context, id int64) (*model.Team, error) {
	row := s.q.QueryRow(ctx, `
		SELECT id, owner_user_id, name, created_at FROM teams WHERE id = $1`, id)
	return scanTeam(row)
}

func (s *teamStore) GetByOwner(ctx context.Context, ownerUserID int64) (*model.Team, error) {
	row := s.q.QueryRow(ctx, `
		SELECT id, owner_user_id, name, created_at FROM teams WHERE owner_user_id = $1`, ownerUserID)
	return scanTeam(row)
}

func (s *teamStore) Create(ctx context.Context, team *model.Team) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO teams (id, owner_user_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		team.ID, team.OwnerUserID, team.Name,
	)
	return row.Scan(&team.CreatedAt)
}

func (s *teamStore) Delete(ctx context.Context, id int64) error {
	_, err := s.q.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	return err
}

func (s *teamStore) GetMembership(ctx context.Context, userID int64) (*model.TeamMember, error) {
	row := s.q.QueryRow(ctx, `
		SELECT id, team_id, user_id, role, joined_at
		FROM team_members WHERE user_id = $1`, userID)
	return scanMember(row)
}

func (s *teamStore) GetMember(ctx context.Context, teamID, userID int64) (*model.TeamMember, error) {
	row := s.q.QueryRow(ctx, `
		SELECT id, team_id, user_id, role, joined_at
		FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	return scanMember(row)
}

func (s *teamStore) AddMember(ctx context.Context, member *model.TeamMember) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO team_members (id, team_id, user_id, role)
		VALUES ($1, $2, $3, $4)
		RETURNING joined_at`,
		member.ID, member.TeamID, member.UserID, member.Role,
	)
	return row.Scan(&member.JoinedAt)
}

func (s *teamStore) RemoveMember(ctx context.Context, teamID, userID int64) error {
	tag, err := s.q.Exec(ctx, `
		DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *teamStore) ListMembers(ctx context.Context, teamID int64) ([]model.TeamMemberDetail, error) {
	rows, err := s.q.Query(ctx, `
		SELECT m.id, m.team_id, m.user_id, m.role, m.joined_at, u.email, u.full_name
		FROM team_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.team_id = $1
		ORDER BY m.joined_at`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.TeamMemberDetail
	for rows.Next() {
		var d model.TeamMemberDetail
		if err := rows.Scan(&d.ID, &d.TeamID, &d.UserID, &d.Role, &d.JoinedAt, &d.Email, &d.FullName); err != nil {
			return nil, err
		}
		members = append(members, d)
	}
	return members, rows.Err()
}

func scanTeam(row pgx.Row) (*model.Team, error) {
	var t model.Team
	if err := row.Scan(&t.ID, &t.OwnerUserID, &t.Name, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func scanMember(row pgx.Row) (*model.TeamMember, error) {
	var m model.TeamMember
	if err := row.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
