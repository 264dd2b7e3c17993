package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// UserService implements public profile lookups and the admin user
// management surface.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// GetProfile returns a user joined with its profile row.
func (s *UserService) GetProfile(ctx context.Context, id string) (*ports.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &ports.UserProfile{User: *user}
	if p, err := s.repo.FindProfile(ctx, id); err == nil && p != nil {
		profile.AvatarURL = p.AvatarURL
		profile.Location = p.Location
		profile.Phone = p.Phone
		profile.Rating = p.Rating
	}
	return profile, nil
}

// ListAdmins returns the public directory of admin and super_admin
// accounts.
func (s *UserService) ListAdmins(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListByRoles(ctx, domain.RoleAdmin, domain.RoleSuperAdmin)
}

// ListUsers returns every account, admin surface only.
func (s *UserService) ListUsers(ctx context.Context, caller ports.Caller) ([]*domain.User, error) {
	if !domain.Authorize(caller.Role, domain.ActionListUsers, "") {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}

// CreateUser creates an account with an assignable role. Admin accounts
// require a super_admin caller.
func (s *UserService) CreateUser(ctx context.Context, caller ports.Caller, input ports.AdminCreateUserInput) (*domain.User, error) {
	if !domain.Authorize(caller.Role, domain.ActionCreateUser, input.Role) {
		return nil, domain.ErrForbidden
	}
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Role:         input.Role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Str("created_by", caller.UserID).Msg("user created by admin")
	return created, nil
}

// UpdateUser replaces the non-empty fields of an account. Super_admin
// accounts can never be targeted.
func (s *UserService) UpdateUser(ctx context.Context, caller ports.Caller, id string, input ports.AdminUpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.Authorize(caller.Role, domain.ActionUpdateUser, user.Role) {
		return nil, domain.ErrForbidden
	}
	if input.Role != "" && !domain.Authorize(caller.Role, domain.ActionCreateUser, input.Role) {
		return nil, domain.ErrForbidden
	}

	if input.Email != "" {
		user.Email = input.Email
	}
	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Role != "" {
		user.Role = input.Role
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. Super_admin accounts can never be
// targeted; admin accounts require a super_admin caller.
func (s *UserService) DeleteUser(ctx context.Context, caller ports.Caller, id string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.Authorize(caller.Role, domain.ActionDeleteUser, user.Role) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Str("deleted_by", caller.UserID).Msg("user deleted by admin")
	return nil
}
