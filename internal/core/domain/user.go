package domain

import "time"

const (
	RoleFarmer     = "farmer"
	RoleBuyer      = "buyer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// AssignableRoles are the roles that may be granted through the admin
// surface. Super admin is bootstrapped from configuration and is never
// assignable.
var AssignableRoles = []string{RoleFarmer, RoleBuyer, RoleAdmin}

// IsAssignableRole reports whether role may be set on a created or edited
// account.
func IsAssignableRole(role string) bool {
	for _, r := range AssignableRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdminRole reports whether role grants access to the admin surface.
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// User models an account in the marketplace.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"user_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile holds the optional public fields kept 1:1 with a user row.
type Profile struct {
	UserID    string  `json:"id"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Location  string  `json:"location,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Rating    float64 `json:"rating"`
}
