package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/usecase-catalog/internal/api/http/handlers"
	"github.com/spec-kit/usecase-catalog/internal/auth"
	"github.com/spec-kit/usecase-catalog/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	UseCases       *handlers.UseCasesHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Reads are public; create and update
// require admin or editor, delete is admin-only.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Banner)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/auth/login", cfg.Auth.Login)

	useCases := api.Group("/use-cases")
	useCases.Get("/", cfg.UseCases.List)
	useCases.Get("/:id", cfg.UseCases.Get)

	editors := auth.RequireRole(domain.RoleAdmin, domain.RoleEditor)
	admins := auth.RequireRole(domain.RoleAdmin)
	useCases.Post("/", cfg.AuthMiddleware.Handle, editors, cfg.UseCases.Create)
	useCases.Put("/:id", cfg.AuthMiddleware.Handle, editors, cfg.UseCases.Update)
	useCases.Delete("/:id", cfg.AuthMiddleware.Handle, admins, cfg.UseCases.Delete)
}
