package handler

import (
	"context"
	"time"

	"kks-tracker/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type readinessProbe interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db readinessProbe
}

func NewHealthHandler(db readinessProbe) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/healthz", h.Live)
	r.Get("/readyz", h.Ready)
}

func (h *HealthHandler) Live(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": "up"})
}

// Ready fails while the database is unreachable.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	if h.db == nil {
		return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": "up"})
	}
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "database unavailable", fiber.Map{"status": "down"})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"status": "up"})
}
