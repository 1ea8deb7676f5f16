package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// AuthService coordinates registration, login and logout.
type AuthService struct {
	users      repository.UserRepository
	sessions   auth.SessionStore
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	SessionStore auth.SessionStore
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     domain.Role
}

// Session is an issued credential.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.SessionStore,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates an account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, Session, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)
	if input.Name == "" || input.Email == "" || input.Phone == "" || input.Password == "" || input.Role == "" {
		return nil, Session{}, apperrors.NewValidationError("please fill full form", nil)
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, Session{}, apperrors.NewValidationError("please provide a valid email", nil)
	}
	if !input.Role.Valid() {
		return nil, Session{}, apperrors.NewValidationError("role must be Job Seeker or Employer", nil)
	}
	if len(input.Password) < 8 {
		return nil, Session{}, apperrors.NewValidationError("password must contain at least 8 characters", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, Session{}, err
	}
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Session{}, apperrors.NewConflict("email already registered", nil)
		}
		return nil, Session{}, err
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, Session{}, err
	}
	return user, session, nil
}

// Login authenticates a user for the role they claim.
func (s *AuthService) Login(ctx context.Context, email, password string, role domain.Role) (*domain.User, Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || role == "" {
		return nil, Session{}, apperrors.NewValidationError("please provide email, password and role", nil)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Session{}, apperrors.NewUnauthorized("invalid email or password")
		}
		return nil, Session{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, Session{}, apperrors.NewUnauthorized("invalid email or password")
	}
	if user.Role != role {
		return nil, Session{}, apperrors.NewForbidden("user with provided email and role not found")
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, Session{}, err
	}
	return user, session, nil
}

// Logout revokes the session's token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.sessions.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperrors.NewUpstreamFailure("session store unavailable", err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issue(user *domain.User) (Session, error) {
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp}, nil
}
