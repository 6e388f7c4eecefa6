package model

import "time"

// Workspace is a brand project grouping generated identity artifacts.
// Deleting a workspace cascades to its assets and activity timeline.
type Workspace struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ProjectName  string    `json:"project_name"`
	Industry     string    `json:"industry"`
	Tone         string    `json:"tone"`
	Audience     string    `json:"audience"`
	Vibe         string    `json:"vibe"`
	BrandName    *string   `json:"brand_name,omitempty"`
	Tagline      *string   `json:"tagline,omitempty"`
	ColorPalette []string  `json:"color_palette,omitempty"`
	Fonts        []string  `json:"fonts,omitempty"`
	LogoPrompt   *string   `json:"logo_prompt,omitempty"`
	BrandStory   *string   `json:"brand_story,omitempty"`
	HealthScore  int       `json:"health_score"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type WorkspaceAsset struct {
	ID          int64     `json:"id"`
	WorkspaceID int64     `json:"workspace_id"`
	AssetType   string    `json:"asset_type"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

type WorkspaceActivity struct {
	ID          int64     `json:"id"`
	WorkspaceID int64     `json:"workspace_id"`
	UserID      int64     `json:"user_id"`
	Action      string    `json:"action"`
	Details     *string   `json:"details,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
