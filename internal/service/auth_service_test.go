package service

import (
	"context"
	"testing"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

func newAuthService(t *testing.T) (*AuthService, auth.SessionStore) {
	t.Helper()
	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: "test", AccessTokenTTLMinutes: 5, BcryptCost: 4}}
	sessions := auth.NewMemorySessionStore()
	svc := NewAuthService(cfg, AuthDependencies{
		UserRepo:     repository.NewMemoryStore().Users(),
		SessionStore: sessions,
	})
	return svc, sessions
}

func registration() RegisterInput {
	return RegisterInput{
		Name:     "Ali",
		Email:    "Ali@Example.com",
		Phone:    "03001234567",
		Password: "password123",
		Role:     domain.RoleEmployer,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, session, err := svc.Register(ctx, registration())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "ali@example.com" || user.PasswordHash == "password123" || session.Token == "" {
		t.Fatalf("user = %+v session = %+v", user, session)
	}

	_, _, err = svc.Register(ctx, registration())
	assertCode(t, err, apperrors.CodeConflict)

	logged, _, err := svc.Login(ctx, "ali@example.com", "password123", domain.RoleEmployer)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("logged in as %s, want %s", logged.ID, user.ID)
	}

	_, _, err = svc.Login(ctx, "ali@example.com", "wrong-password", domain.RoleEmployer)
	assertCode(t, err, apperrors.CodeUnauthorized)
	_, _, err = svc.Login(ctx, "ali@example.com", "password123", domain.RoleJobSeeker)
	assertCode(t, err, apperrors.CodeForbidden)
	_, _, err = svc.Login(ctx, "nobody@example.com", "password123", domain.RoleEmployer)
	assertCode(t, err, apperrors.CodeUnauthorized)
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "" }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"unknown role", func(in *RegisterInput) { in.Role = "Admin" }},
		{"short password", func(in *RegisterInput) { in.Password = "short" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newAuthService(t)
			input := registration()
			tc.mutate(&input)
			_, _, err := svc.Register(context.Background(), input)
			assertCode(t, err, apperrors.CodeValidation)
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, sessions := newAuthService(t)
	ctx := context.Background()
	_, session, err := svc.Register(ctx, registration())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	claims, err := svc.TokenManager().ParseToken(session.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if revoked, _ := sessions.IsRevoked(ctx, claims.ID); !revoked {
		t.Fatal("token still active after logout")
	}
}
