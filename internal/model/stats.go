package model

// MonthBucket is one month of user-growth data for the admin dashboard.
type MonthBucket struct {
	Label string `json:"label"` // "Jan 2026"
	Count int64  `json:"count"`
}

type DashboardStats struct {
	TotalUsers   int64         `json:"total_users"`
	ActiveUsers  int64         `json:"active_users"`
	TotalTokens  int64         `json:"total_tokens"`
	TotalContent int64         `json:"total_content"`
	UserGrowth   []MonthBucket `json:"user_growth"`
}
