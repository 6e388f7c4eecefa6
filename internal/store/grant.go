package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Rahulbariki/brand-automation/internal/model"
)

type grantStore struct {
	q Querier
}

func (s *grantStore) GetByEmail(ctx context.Context, email string) (*model.AdminGrant, error) {
	row := s.q.QueryRow(ctx, `
		SELECT id, email, granted_by, note, created_at
		FROM admin_grants WHERE email = $1`, email)

	var g model.AdminGrant
	if err := row.Scan(&g.ID, &g.Email, &g.GrantedBy, &g.Note, &g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (s *grantStore) Create(ctx context.Context, grant *model.AdminGrant) error {
	// ON CONFLICT keeps startup seeding idempotent.
	row := s.q.QueryRow(ctx, `
		INSERT INTO admin_grants (id, email, granted_by, note)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, created_at`,
		grant.ID, grant.Email, grant.GrantedBy, grant.Note,
	)
	return row.Scan(&grant.ID, &grant.CreatedAt)
}

func (s *grantStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM admin_grants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *grantStore) List(ctx context.Context) ([]model.AdminGrant, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, email, granted_by, note, created_at
		FROM admin_grants ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []model.AdminGrant
	for rows.Next() {
		var g model.AdminGrant
		if err := rows.Scan(&g.ID, &g.Email, &g.GrantedBy, &g.Note, &g.CreatedAt); err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}
