package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/YoussefTakali/esprithub/internal/api/dto"
	"github.com/YoussefTakali/esprithub/internal/service"
)

// AuthHandler exposes login, refresh and logout endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	result, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": authResponse(result)})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "refresh_token required")
	}

	result, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": authResponse(result)})
}

// Logout handles POST /auth/logout. Tokens stay valid until expiry; this
// endpoint only acknowledges the client-side logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.Context(), c.Get("Authorization")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "logout successful"}})
}

func authResponse(result *service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		AccessToken:        result.Tokens.AccessToken,
		RefreshToken:       result.Tokens.RefreshToken,
		TokenType:          result.TokenType,
		User:               dto.NewUserResponse(result.User),
		RequiresGithubAuth: result.RequiresGithubAuth,
	}
}
