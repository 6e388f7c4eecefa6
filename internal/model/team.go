package model

import "time"

type TeamRole string

const (
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleEditor TeamRole = "editor"
	TeamRoleViewer TeamRole = "viewer"
)

type Team struct {
	ID          int64     `json:"id"`
	OwnerUserID int64     `json:"owner_user_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

type TeamMember struct {
	ID       int64     `json:"id"`
	TeamID   int64     `json:"team_id"`
	UserID   int64     `json:"user_id"`
	Role     TeamRole  `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// TeamMemberDetail joins membership rows with the member's user record for
// the "my team" owner view.
type TeamMemberDetail struct {
	TeamMember
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
}
