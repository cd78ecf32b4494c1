package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler accepts a nil cache; readiness then reports it as disabled.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/health", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}

func (h *HealthHandler) HandleLiveness(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "OK",
		"message": "Server is running",
	})
}

func (h *HealthHandler) HandleReadiness(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	ready := true
	if h.db == nil || h.db.Ping(ctx) != nil {
		dbStatus = "down"
		ready = false
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = "up"
		if err := h.cache.Ping(ctx); err != nil {
			cacheStatus = "down"
		}
	}

	status := fiber.StatusOK
	overall := "OK"
	if !ready {
		status = fiber.StatusServiceUnavailable
		overall = "UNAVAILABLE"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   overall,
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
