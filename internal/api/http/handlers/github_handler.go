package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/YoussefTakali/esprithub/internal/api/dto"
	"github.com/YoussefTakali/esprithub/internal/auth"
	"github.com/YoussefTakali/esprithub/internal/service"
	apperrors "github.com/YoussefTakali/esprithub/pkg/util/errorutil"
)

// GithubHandler exposes GitHub identity link endpoints.
type GithubHandler struct {
	github *service.GithubService
}

// NewGithubHandler constructs handler.
func NewGithubHandler(githubService *service.GithubService) *GithubHandler {
	return &GithubHandler{github: githubService}
}

// Link handles POST /github/link for the authenticated user.
func (h *GithubHandler) Link(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.GithubLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.GithubToken == "" {
		return fiber.NewError(http.StatusBadRequest, "github_token required")
	}

	if err := h.github.Link(c.Context(), principal.Email, req.GithubToken); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"message": "GitHub account linked successfully"}})
}

// ValidateToken handles POST /github/validate-token. The response is always
// 200 with a boolean; internal failures count as invalid.
func (h *GithubHandler) ValidateToken(c *fiber.Ctx) error {
	var req dto.GithubLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	valid := h.github.ValidateToken(c.Context(), req.GithubToken)
	return c.JSON(fiber.Map{"data": fiber.Map{"valid": valid}})
}

// UserInfo handles GET /github/user-info?token=...
func (h *GithubHandler) UserInfo(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return fiber.NewError(http.StatusBadRequest, "token required")
	}

	info, err := h.github.GetUserInfo(c.Context(), token)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.GithubUserInfoResponse{
		ID:        info.ID,
		Login:     info.Login,
		Name:      info.Name,
		Email:     info.Email,
		AvatarURL: info.AvatarURL,
	}})
}
