package model

import "time"

type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// PlanSource records how a user acquired their plan. Plans granted by an
// admin cannot be downgraded by non-admin paths.
type PlanSource string

const (
	PlanSourceDefault PlanSource = "default"
	PlanSourceBilling PlanSource = "billing"
	PlanSourceAdmin   PlanSource = "admin"
	PlanSourceCoupon  PlanSource = "coupon"
)

type AuthProvider string

const (
	AuthProviderEmail  AuthProvider = "email"
	AuthProviderHosted AuthProvider = "hosted"
)

type User struct {
	ID                 int64        `json:"id"`
	ExternalID         *string      `json:"external_id,omitempty"`
	Email              string       `json:"email"`
	PasswordHash       *string      `json:"-"`
	FullName           *string      `json:"full_name,omitempty"`
	Provider           AuthProvider `json:"provider"`
	IsAdmin            bool         `json:"is_admin"`
	Role               string       `json:"role"`
	IsActive           bool         `json:"is_active"`
	SubscriptionPlan   Plan         `json:"subscription_plan"`
	SubscriptionStatus string       `json:"subscription_status"`
	PlanSource         PlanSource   `json:"plan_source"`
	BillingCustomerID  *string      `json:"billing_customer_id,omitempty"`
	BillingSubID       *string      `json:"billing_subscription_id,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// HasVerifiableEnterprise reports whether the user's own stored plan is
// enterprise from a source that entitles plan-mutation level access.
// Team-inherited enterprise deliberately does not qualify.
func (u *User) HasVerifiableEnterprise() bool {
	if u.SubscriptionPlan != PlanEnterprise {
		return false
	}
	switch u.PlanSource {
	case PlanSourceBilling, PlanSourceAdmin, PlanSourceCoupon:
		return true
	}
	return false
}
