package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/YoussefTakali/esprithub/internal/api/http/handlers"
	"github.com/YoussefTakali/esprithub/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Github         *handlers.GithubHandler
	Users          *handlers.UsersHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)

	githubGroup := app.Group("/github", cfg.AuthMiddleware.Handle)
	githubGroup.Post("/link", auth.RequirePermission(auth.PermissionGithubLink), cfg.Github.Link)
	githubGroup.Post("/validate-token", auth.RequirePermission(auth.PermissionGithubLink), cfg.Github.ValidateToken)
	githubGroup.Get("/user-info", auth.RequirePermission(auth.PermissionGithubLink), cfg.Github.UserInfo)

	usersGroup := app.Group("/users", cfg.AuthMiddleware.Handle)
	usersGroup.Get("", auth.RequirePermission(auth.PermissionUserList), cfg.Users.List)
	usersGroup.Get("/:id", auth.RequirePermission(auth.PermissionUserList), cfg.Users.Get)
	usersGroup.Post("", auth.RequirePermission(auth.PermissionUserManage), cfg.Users.Create)
	usersGroup.Patch("/:id", auth.RequirePermission(auth.PermissionUserManage), cfg.Users.Update)
	usersGroup.Delete("/:id", auth.RequirePermission(auth.PermissionUserManage), cfg.Users.Delete)

	dashboardGroup := app.Group("/dashboard", cfg.AuthMiddleware.Handle)
	dashboardGroup.Get("/stats", auth.RequirePermission(auth.PermissionDashboardStats), cfg.Dashboard.Stats)
	dashboardGroup.Get("/profile", auth.RequirePermission(auth.PermissionProfileRead), cfg.Dashboard.Profile)
	dashboardGroup.Get("/welcome", auth.RequirePermission(auth.PermissionProfileRead), cfg.Dashboard.Welcome)
}
