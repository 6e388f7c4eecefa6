package model

import "time"

// AdminGrant is an auditable record entitling an email address to admin and
// enterprise access. Grants replace in-code allow-lists: they live in the
// database, carry provenance, and are managed over the admin API.
type AdminGrant struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	GrantedBy string    `json:"granted_by"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
