package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/document-service/internal/api/dto"
	"github.com/spec-kit/document-service/internal/auth"
	"github.com/spec-kit/document-service/internal/domain"
	"github.com/spec-kit/document-service/internal/service"
	apperrors "github.com/spec-kit/document-service/pkg/util"
)

// AuthHandler exposes register, login and logout endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user":    dto.NewUserResponse(user),
		"message": "User successfully created.",
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	token, _, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		AccessToken: token,
		Message:     "Login successful",
	})
}

// Logout handles POST /auth/logout. The bearer header must be present,
// but the token is revoked without requiring successful verification so
// repeated logouts and logouts of expired tokens still succeed.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, ok := auth.BearerToken(c)
	if !ok {
		return apperrors.NewUnauthorized("missing or invalid authorization header")
	}

	if err := h.auth.Logout(c.UserContext(), token); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
