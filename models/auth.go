package models

// AuthUser is the caller identity attached to a request by the auth middleware.
type AuthUser struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role"`
	// Insecure is set when the token was decoded without verification.
	Insecure bool `json:"-"`
}

// DisplayName picks the vendor-facing name: token name, then email, then "Vendor".
func (u *AuthUser) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "Vendor"
}
