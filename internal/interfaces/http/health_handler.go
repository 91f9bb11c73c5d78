package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-alerts-api/internal/application/dto"
)

// Pinger fuente de datos con chequeo de disponibilidad (pool PostgreSQL o store en memoria).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler endpoints de liveness y readiness.
type HealthHandler struct {
	service string
	db      Pinger
}

func NewHealthHandler(service string, db Pinger) *HealthHandler {
	return &HealthHandler{service: service, db: db}
}

// Live responde siempre ok mientras el proceso atienda.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok", Service: h.service})
}

// Ready comprueba la fuente de datos con un timeout corto.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "unavailable", Service: h.service})
		}
	}
	return c.JSON(dto.HealthResponse{Status: "ok", Service: h.service})
}
