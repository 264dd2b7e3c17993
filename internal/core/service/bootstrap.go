package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// EnsureSuperAdmin seeds the single super_admin account from configuration
// when none exists yet. Called once at startup.
func EnsureSuperAdmin(ctx context.Context, repo ports.UserRepository, email, password, fullName string, log zerolog.Logger) error {
	if email == "" || password == "" {
		log.Warn().Msg("super admin credentials not configured, skipping bootstrap")
		return nil
	}

	n, err := repo.CountByRole(ctx, domain.RoleSuperAdmin)
	if err != nil {
		return fmt.Errorf("count super admins: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := repo.Create(ctx, user); err != nil {
		return fmt.Errorf("seed super admin: %w", err)
	}

	log.Info().Str("email", email).Msg("super admin account seeded")
	return nil
}
