package model

import "time"

// UsageLog is one metered request. Rows are append-only: created on every
// billable call and never mutated or deleted.
type UsageLog struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Endpoint     string    `json:"endpoint"`
	TokensUsed   *int      `json:"tokens_used,omitempty"`
	RequestCount int       `json:"request_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type GeneratedContent struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ContentType string    `json:"content_type"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}
