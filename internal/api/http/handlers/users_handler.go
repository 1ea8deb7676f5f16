package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/service"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// UsersHandler exposes session endpoints.
type UsersHandler struct {
	auth         *service.AuthService
	cookieName   string
	cookieSecure bool
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, cfg config.AuthConfig) *UsersHandler {
	return &UsersHandler{auth: authService, cookieName: cfg.CookieName, cookieSecure: cfg.CookieSecure}
}

// Register handles POST /api/user/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, session, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	h.setCookie(c, session.Token, session.ExpiresAt)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "user registered",
		"user":    dto.NewUserResponse(user),
		"auth":    dto.AuthResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
	})
}

// Login handles POST /api/user/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, session, err := h.auth.Login(c.UserContext(), req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	h.setCookie(c, session.Token, session.ExpiresAt)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "user logged in",
		"user":    dto.NewUserResponse(user),
		"auth":    dto.AuthResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
	})
}

// Logout handles GET /api/user/logout.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	if principal != nil {
		if err := h.auth.Logout(c.UserContext(), principal.Claims); err != nil {
			return err
		}
	}
	h.setCookie(c, "", time.Now())
	return c.JSON(fiber.Map{"success": true, "message": "logged out"})
}

// GetUser handles GET /api/user/getuser.
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user not authorized")
	}
	return c.JSON(fiber.Map{"success": true, "user": dto.NewUserResponse(principal.User)})
}

func (h *UsersHandler) setCookie(c *fiber.Ctx, value string, expires time.Time) {
	sameSite := fiber.CookieSameSiteLaxMode
	if h.cookieSecure {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: sameSite,
	})
}
