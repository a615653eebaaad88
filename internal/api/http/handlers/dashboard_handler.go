package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/YoussefTakali/esprithub/internal/api/dto"
	"github.com/YoussefTakali/esprithub/internal/auth"
	"github.com/YoussefTakali/esprithub/internal/service"
	apperrors "github.com/YoussefTakali/esprithub/pkg/util/errorutil"
)

// DashboardHandler exposes aggregate statistics and profile endpoints.
type DashboardHandler struct {
	dashboard *service.DashboardService
	users     *service.UserService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService, userService *service.UserService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboardService, users: userService}
}

// Stats handles GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// Profile handles GET /dashboard/profile for the authenticated user.
func (h *DashboardHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.users.GetByEmail(c.Context(), principal.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Welcome handles GET /dashboard/welcome for the authenticated user.
func (h *DashboardHandler) Welcome(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.users.GetByEmail(c.Context(), principal.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": h.dashboard.WelcomeMessage(user)}})
}
