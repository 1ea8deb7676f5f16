package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/policy"
)

// actorFrom returns the caller identity attached by the auth middleware, or the
// anonymous actor on public routes.
func actorFrom(c *fiber.Ctx) policy.Actor {
	principal, _ := auth.PrincipalFromContext(c)
	return principal.Actor()
}
