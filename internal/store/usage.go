package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Rahulbariki/brand-automation/internal/model"
)

type usageStore struct {
	q Querier
}

func (s *usageStore) Record(ctx context.Context, log *model.UsageLog) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO usage_logs (id, user_id, endpoint, tokens_used, request_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		log.ID, log.UserID, log.Endpoint, log.TokensUsed, log.RequestCount,
	)
	return row.Scan(&log.CreatedAt)
}

func (s *usageStore) CountSince(ctx context.Context, userID int64, since time.Time) (int64, error) {
	var count int64
	err := s.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(request_count), 0)
		FROM usage_logs
		WHERE user_id = $1 AND created_at >= $2`,
		userID, since,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *usageStore) ListRecent(ctx context.Context, limit int32) ([]model.UsageLog, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, user_id, endpoint, tokens_used, request_count, created_at
		FROM usage_logs
		ORDER BY created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.UsageLog
	for rows.Next() {
		var l model.UsageLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Endpoint, &l.TokensUsed, &l.RequestCount, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

type contentStore struct {
	q Querier
}

func (s *contentStore) Create(ctx context.Context, content *model.GeneratedContent) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO generated_content (id, user_id, content_type, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		content.ID, content.UserID, content.ContentType, content.Content,
	)
	return row.Scan(&content.CreatedAt)
}

func (s *contentStore) ListByUser(ctx context.Context, userID int64, limit int32) ([]model.GeneratedContent, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, user_id, content_type, content, created_at
		FROM generated_content
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContent(rows)
}

func (s *contentStore) ListRecent(ctx context.Context, limit int32) ([]model.GeneratedContent, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, user_id, content_type, content, created_at
		FROM generated_content
		ORDER BY created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContent(rows)
}

func scanContent(rows pgx.Rows) ([]model.GeneratedContent, error) {
	var items []model.GeneratedContent
	for rows.Next() {
		var c model.GeneratedContent
		if err := rows.Scan(&c.ID, &c.UserID, &c.ContentType, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
