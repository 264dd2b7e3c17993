package ports

import (
	"context"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
)

// UserProfile is the public view of a user joined with its profile row.
type UserProfile struct {
	domain.User
	AvatarURL string  `json:"avatar_url,omitempty"`
	Location  string  `json:"location,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Rating    float64 `json:"rating"`
}

// AdminCreateUserInput carries the fields for an admin-created account.
type AdminCreateUserInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// AdminUpdateUserInput replaces fields of an existing account. Empty
// fields are left unchanged.
type AdminUpdateUserInput struct {
	Email    string
	FullName string
	Role     string
	Password string
}

// UserService defines the public profile lookups and the role-gated admin
// user management surface.
type UserService interface {
	GetProfile(ctx context.Context, id string) (*UserProfile, error)
	// ListAdmins returns the public list of admin and super_admin users.
	ListAdmins(ctx context.Context) ([]*domain.User, error)

	ListUsers(ctx context.Context, caller Caller) ([]*domain.User, error)
	CreateUser(ctx context.Context, caller Caller, input AdminCreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, caller Caller, id string, input AdminUpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, caller Caller, id string) error
}
