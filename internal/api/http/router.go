package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frontdesk/visitor-register/internal/api/http/handlers"
	"github.com/frontdesk/visitor-register/internal/auth"
	"github.com/frontdesk/visitor-register/internal/domain"
	"github.com/frontdesk/visitor-register/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Staff          *handlers.StaffHandler
	Visitors       *handlers.VisitorsHandler
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Handler())
	}

	api := app.Group("/api/v1")
	requireAuth := cfg.AuthMiddleware.Handle

	users := api.Group("/users")
	users.Post("/signup", cfg.Users.Signup)
	users.Post("/login", cfg.Users.Login)
	users.Delete("/logout", cfg.Users.Logout)
	users.Get("/me", requireAuth, cfg.Users.Me)

	staff := api.Group("/staff-members", requireAuth)
	staff.Get("", cfg.Staff.List)
	staff.Post("", auth.RequireRole(domain.UserRoleAdmin), cfg.Staff.Create)

	visitors := api.Group("/visitors", requireAuth)
	visitors.Get("", cfg.Visitors.List)
	visitors.Get("/logs", cfg.Visitors.Logs)
	visitors.Get("/logs/export", cfg.Visitors.ExportLogs)
	visitors.Get("/analytics", cfg.Visitors.Analytics)
	visitors.Post("/check-in", cfg.Visitors.CheckIn)
	visitors.Post("/checkout", cfg.Visitors.CheckOut)
	visitors.Get("/check-ins/latest", cfg.Visitors.LatestCheckIns)
	visitors.Get("/check-outs/latest", cfg.Visitors.LatestCheckOuts)
}
