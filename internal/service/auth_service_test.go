package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vstepready/vstep-backend/internal/config"
	"github.com/vstepready/vstep-backend/internal/model"
	"github.com/vstepready/vstep-backend/internal/repository"
)

func newAuthFixture(t *testing.T) (*AuthService, *model.User) {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4, // keep the test fast
	}
	users := repository.NewMemoryUserStore()
	svc := NewAuthService(cfg, users)

	hash, err := svc.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user := &model.User{
		Email:        "thu.ha@example.com",
		Name:         "Thu Ha",
		PasswordHash: hash,
		Role:         model.RoleTeacher,
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return svc, user
}

func TestLoginAndTokenRoundTrip(t *testing.T) {
	svc, user := newAuthFixture(t)

	token, got, err := svc.Login(context.Background(), "thu.ha@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("user = %d, want %d", got.ID, user.ID)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	actor := claims.Actor()
	if actor.ID != user.ID || actor.Name != user.Name || actor.Role != model.RoleTeacher {
		t.Errorf("actor = %+v, want the logged-in teacher", actor)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	// Unknown account and wrong password return the same error, so login
	// probing cannot enumerate accounts.
	if _, _, err := svc.Login(ctx, "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "thu.ha@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc, user := newAuthFixture(t)

	token, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := svc.ValidateToken(token + "x"); err == nil {
		t.Error("tampered token validated, want error")
	}

	otherCfg := &config.Config{JWTSecret: "different-secret", JWTExpiry: time.Hour}
	otherSvc := NewAuthService(otherCfg, repository.NewMemoryUserStore())
	if _, err := otherSvc.ValidateToken(token); err == nil {
		t.Error("token validated under a different secret, want error")
	}
}
