package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/frontdesk/visitor-register/internal/api/dto"
	"github.com/frontdesk/visitor-register/internal/persistence"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready pings the configured backing stores. A store that is not configured
// is reported as "disabled" and does not fail readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	deps := map[string]any{}
	ready := true

	check := func(name string, enabled bool, ping func(context.Context) error) {
		if !enabled {
			deps[name] = "disabled"
			return
		}
		if err := ping(ctx); err != nil {
			deps[name] = err.Error()
			ready = false
			return
		}
		deps[name] = "ok"
	}
	check("postgres", h.postgres.Enabled(), h.postgres.Ping)
	check("redis", h.redis.Enabled(), h.redis.Ping)

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": deps,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Envelope{
		Status: dto.Status{Code: fiber.StatusServiceUnavailable, Message: "one or more dependencies unavailable"},
		Error:  &dto.ErrorBody{Code: "DEPENDENCY_UNAVAILABLE", Details: deps},
	})
}
