package ports

import (
	"context"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts and their
// 1:1 profiles.
type UserRepository interface {
	// Create inserts the user and an empty profile row for it.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindProfile returns the profile row joined to the user.
	FindProfile(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.User, error)
	// ListByRoles returns users whose role is one of roles, oldest first.
	ListByRoles(ctx context.Context, roles ...string) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role string) (int, error)
}
