package ports

import (
	"context"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
)

// Caller is the resolved identity of an authenticated request, extracted
// once from the bearer token and passed explicitly to every service that
// needs it.
type Caller struct {
	UserID string
	Role   string
}

// RegisterInput carries the public registration fields. UserType must be
// farmer or buyer; admin accounts are created through the admin surface.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	UserType string
}

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed session token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
