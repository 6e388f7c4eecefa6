package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Rahulbariki/brand-automation/internal/model"
)

const workspaceColumns = `id, user_id, project_name, industry, tone, audience, vibe,
	brand_name, tagline, color_palette, fonts, logo_prompt, brand_story,
	health_score, created_at, updated_at`

type workspaceStore struct {
	q Querier
}

func (s *workspaceStore) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	row := s.q.QueryRow(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE id = $1`, id)
	return scanWorkspace(row)
}

func (s *workspaceStore) Create(ctx context.Context, ws *model.Workspace) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO workspaces (id, user_id, project_name, industry, tone, audience, vibe,
			brand_name, tagline, color_palette, fonts, logo_prompt, brand_story, health_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`,
		ws.ID, ws.UserID, ws.ProjectName, ws.Industry, ws.Tone, ws.Audience, ws.Vibe,
		ws.BrandName, ws.Tagline, ws.ColorPalette, ws.Fonts, ws.LogoPrompt, ws.BrandStory,
		ws.HealthScore,
	)
	return row.Scan(&ws.CreatedAt, &ws.UpdatedAt)
}

func (s *workspaceStore) Update(ctx context.Context, ws *model.Workspace) error {
	row := s.q.QueryRow(ctx, `
		UPDATE workspaces SET
			project_name = $2, industry = $3, tone = $4, audience = $5, vibe = $6,
			brand_name = $7, tagline = $8, color_palette = $9, fonts = $10,
			logo_prompt = $11, brand_story = $12, health_score = $13,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		ws.ID, ws.ProjectName, ws.Industry, ws.Tone, ws.Audience, ws.Vibe,
		ws.BrandName, ws.Tagline, ws.ColorPalette, ws.Fonts,
		ws.LogoPrompt, ws.BrandStory, ws.HealthScore,
	)
	if err := row.Scan(&ws.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *workspaceStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *workspaceStore) ListByUser(ctx context.Context, userID int64) ([]model.Workspace, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+workspaceColumns+` FROM workspaces
		WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Workspace
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ws)
	}
	return out, rows.Err()
}

func (s *workspaceStore) AddAsset(ctx context.Context, asset *model.WorkspaceAsset) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO workspace_assets (id, workspace_id, asset_type, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		asset.ID, asset.WorkspaceID, asset.AssetType, asset.Content,
	)
	return row.Scan(&asset.CreatedAt)
}

func (s *workspaceStore) ListAssets(ctx context.Context, workspaceID int64) ([]model.WorkspaceAsset, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, workspace_id, asset_type, content, created_at
		FROM workspace_assets WHERE workspace_id = $1 ORDER BY created_at DESC`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []model.WorkspaceAsset
	for rows.Next() {
		var a model.WorkspaceAsset
		if err := rows.Scan(&a.ID, &a.WorkspaceID, &a.AssetType, &a.Content, &a.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (s *workspaceStore) AddActivity(ctx context.Context, act *model.WorkspaceActivity) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO workspace_activities (id, workspace_id, user_id, action, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		act.ID, act.WorkspaceID, act.UserID, act.Action, act.Details,
	)
	return row.Scan(&act.CreatedAt)
}

func (s *workspaceStore) ListActivities(ctx context.Context, workspaceID int64, limit int32) ([]model.WorkspaceActivity, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, workspace_id, user_id, action, details, created_at
		FROM workspace_activities WHERE workspace_id = $1
		ORDER BY created_at DESC LIMIT $2`, workspaceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var acts []model.WorkspaceActivity
	for rows.Next() {
		var a model.WorkspaceActivity
		if err := rows.Scan(&a.ID, &a.WorkspaceID, &a.UserID, &a.Action, &a.Details, &a.CreatedAt); err != nil {
			return nil, err
		}
		acts = append(acts, a)
	}
	return acts, rows.Err()
}

func scanWorkspace(row pgx.Row) (*model.Workspace, error) {
	var ws model.Workspace
	err := row.Scan(
		&ws.ID, &ws.UserID, &ws.ProjectName, &ws.Industry, &ws.Tone, &ws.Audience, &ws.Vibe,
		&ws.BrandName, &ws.Tagline, &ws.ColorPalette, &ws.Fonts, &ws.LogoPrompt, &ws.BrandStory,
		&ws.HealthScore, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ws, nil
}
