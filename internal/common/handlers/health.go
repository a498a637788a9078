package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Health Check Handlers
// ============================================================

// Pinger is anything readiness depends on.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps    map[string]Pinger
	started time.Time
	logger  *zap.Logger
}

func NewHealthHandler(logger *zap.Logger, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps, started: time.Now(), logger: logger}
}

func (h *HealthHandler) Register(app fiber.Router) {
	app.Get("/health/live", h.LivenessProbe)
	app.Get("/health/ready", h.ReadinessProbe)
	app.Get("/health/startup", h.StartupProbe)
}

// LivenessProbe reports that the process is serving requests.
func (h *HealthHandler) LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe pings every dependency and answers 503 if any fails.
func (h *HealthHandler) ReadinessProbe(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	checks := make(fiber.Map, len(h.deps))
	ready := true
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", zap.String("dependency", name), zap.Error(err))
			checks[name] = err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	if !ready {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "not ready",
			"checks": checks,
		})
	}
	return c.JSON(fiber.Map{
		"status": "ready",
		"checks": checks,
	})
}

func (h *HealthHandler) StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
