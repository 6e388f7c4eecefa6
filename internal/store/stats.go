package store

import (
	"context"
	"time"

	"github.com/Rahulbariki/brand-automation/internal/model"
)

type statsStore struct {
	q Querier
}

func (s *statsStore) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats

	row := s.q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE is_active),
			(SELECT COALESCE(SUM(tokens_used), 0) FROM usage_logs),
			(SELECT COUNT(*) FROM generated_content)`)
	if err := row.Scan(&stats.TotalUsers, &stats.ActiveUsers, &stats.TotalTokens, &stats.TotalContent); err != nil {
		return nil, err
	}

	rows, err := s.q.Query(ctx, `
		SELECT date_trunc('month', created_at) AS month, COUNT(*)
		FROM users
		GROUP BY month
		ORDER BY month`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var month time.Time
		var count int64
		if err := rows.Scan(&month, &count); err != nil {
			return nil, err
		}
		stats.UserGrowth = append(stats.UserGrowth, model.MonthBucket{
			Label: month.Format("Jan 2006"),
			Count: count,
		})
	}
	return &stats, rows.Err()
}
