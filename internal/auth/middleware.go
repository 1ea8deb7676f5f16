package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/policy"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User   *domain.User
	Claims *Claims
}

// Actor returns the per-request identity handed to services.
func (p *Principal) Actor() policy.Actor {
	if p == nil || p.User == nil {
		return policy.Actor{}
	}
	return policy.Actor{ID: p.User.ID, Role: p.User.Role}
}

// AuthMiddleware resolves the session cookie to a user.
type AuthMiddleware struct {
	tokens     *TokenManager
	users      repository.UserRepository
	sessions   SessionStore
	cookieName string
	logger     *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, sessions SessionStore, cookieName string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, sessions: sessions, cookieName: cookieName, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	raw := m.credential(c)
	if raw == "" {
		return apperrors.NewUnauthorized("user not authorized")
	}

	claims, err := m.tokens.ParseToken(raw)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	revoked, err := m.sessions.IsRevoked(c.UserContext(), claims.ID)
	if err != nil {
		return apperrors.NewUpstreamFailure("session store unavailable", err)
	}
	if revoked {
		return apperrors.NewUnauthorized("session has ended")
	}

	user, err := m.resolveUser(c, claims.UserID)
	if err != nil {
		return err
	}

	c.Locals(principalKey, &Principal{User: user, Claims: claims})
	return c.Next()
}

func (m *AuthMiddleware) credential(c *fiber.Ctx) string {
	if token := c.Cookies(m.cookieName); token != "" {
		return token
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func (m *AuthMiddleware) resolveUser(c *fiber.Ctx, id string) (*domain.User, error) {
	ctx := c.UserContext()
	user, err := m.sessions.CachedUser(ctx, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		m.logger.Warn("user cache read failed", zap.Error(err))
	}

	user, err = m.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("user not found")
		}
		return nil, apperrors.MapError(err)
	}
	if err := m.sessions.CacheUser(ctx, user); err != nil {
		m.logger.Warn("user cache write failed", zap.Error(err))
	}
	return user, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
