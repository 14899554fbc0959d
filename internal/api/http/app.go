package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/frontdesk/visitor-register/internal/observability"
)

// NewApp builds the Fiber application with the global middleware chain and routes.
func NewApp(name string, logger *zap.Logger, metrics *observability.Metrics, mw MiddlewareConfig, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, logger, metrics, mw)
	routes.Metrics = metrics
	RegisterRoutes(app, routes)
	return app
}
