package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/domain"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// RequireRole ensures the authenticated user holds the given role.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("user not authorized")
		}
		if principal.User.Role != role {
			return apperrors.NewForbidden(string(principal.User.Role) + " is not allowed to access this resource")
		}
		return c.Next()
	}
}

// RequireAnyRole ensures the caller is authenticated.
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("user not authorized")
		}
		return c.Next()
	}
}
