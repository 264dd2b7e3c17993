package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Password: "pass123",
		FullName: "Alice Farmer",
		UserType: domain.RoleFarmer,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleFarmer {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if _, err := repo.FindProfile(context.Background(), user.ID); err != nil {
		t.Fatalf("expected profile row created at registration: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "", Password: "pass", UserType: domain.RoleBuyer}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing email, got %v", err)
	}

	// Only farmer and buyer are self-registerable.
	for _, role := range []string{domain.RoleAdmin, domain.RoleSuperAdmin, "wrong"} {
		if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "b@example.com", Password: "pass", UserType: role}); err != domain.ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials for role %q, got %v", role, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	in := ports.RegisterInput{Email: "bob@example.com", Password: "pass", UserType: domain.RoleBuyer}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	created, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "carol@example.com",
		Password: "s3cret",
		FullName: "Carol",
		UserType: domain.RoleBuyer,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.ID != created.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != created.ID {
		t.Fatalf("expected sub %s, got %v", created.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleBuyer {
		t.Fatalf("expected role %s, got %v", domain.RoleBuyer, claims["role"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "dave@example.com", Password: "goodpass", UserType: domain.RoleFarmer})
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	// Unknown accounts are indistinguishable from bad passwords.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestEnsureSuperAdmin(t *testing.T) {
	repo := newStubUserRepo()

	if err := EnsureSuperAdmin(context.Background(), repo, "root@example.com", "rootpass", "Root", noplog()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	n, _ := repo.CountByRole(context.Background(), domain.RoleSuperAdmin)
	if n != 1 {
		t.Fatalf("expected 1 super admin, got %d", n)
	}

	// Second run is a no-op.
	if err := EnsureSuperAdmin(context.Background(), repo, "root@example.com", "rootpass", "Root", noplog()); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
	n, _ = repo.CountByRole(context.Background(), domain.RoleSuperAdmin)
	if n != 1 {
		t.Fatalf("expected bootstrap to be idempotent, got %d super admins", n)
	}
}
