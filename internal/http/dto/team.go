package dto

import "github.com/Rahulbariki/brand-automation/internal/model"

type CreateTeamRequest struct {
	TeamName string `json:"team_name" binding:"required"`
}

type InviteMemberRequest struct {
	Email string         `json:"email" binding:"required,email"`
	Role  model.TeamRole `json:"role"`
}

type CheckoutRequest struct {
	Plan model.Plan `json:"plan" binding:"required"`
}

type CreateGrantRequest struct {
	Email string `json:"email" binding:"required,email"`
	Note  string `json:"note"`
}
