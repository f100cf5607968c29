package models

import "time"

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

const (
	PlanFree  = "free"
	PlanBasic = "basic"
	PlanPro   = "pro"
)

// User mirrors the identity provider's account plus marketplace fields.
type User struct {
	UID             string    `json:"uid" firestore:"-" bson:"uid"`
	Email           string    `json:"email" firestore:"email" bson:"email"`
	DisplayName     string    `json:"displayName" firestore:"displayName" bson:"displayName"`
	Role            Role      `json:"role" firestore:"role" bson:"role"`
	Plan            string    `json:"plan" firestore:"plan" bson:"plan"`
	Disabled        bool      `json:"disabled" firestore:"disabled" bson:"disabled"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
	QuotesResponded int       `json:"quotesResponded" firestore:"quotesResponded" bson:"quotesResponded"`
}

const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

// UserSummary is the admin listing view of a user.
type UserSummary struct {
	UID             string     `json:"uid"`
	Email           string     `json:"email"`
	DisplayName     string     `json:"displayName"`
	Role            Role       `json:"role"`
	Plan            string     `json:"plan"`
	Status          string     `json:"status"`
	CreatedAt       *time.Time `json:"createdAt"`
	QuotesResponded int        `json:"quotesResponded"`
}

// Summary converts a stored user to its admin view.
func (u User) Summary() UserSummary {
	s := UserSummary{
		UID:             u.UID,
		Email:           u.Email,
		DisplayName:     u.DisplayName,
		Role:            u.Role,
		Plan:            u.Plan,
		Status:          UserStatusActive,
		QuotesResponded: u.QuotesResponded,
	}
	if s.Plan == "" {
		s.Plan = PlanFree
	}
	if u.Disabled {
		s.Status = UserStatusBlocked
	}
	if !u.CreatedAt.IsZero() {
		t := u.CreatedAt
		s.CreatedAt = &t
	}
	return s
}
