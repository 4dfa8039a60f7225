package handlers

import (
	"time"

	"fuelpass/internal/config"
	"fuelpass/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles service health endpoints
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Root returns basic service info
// @Summary Service info
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return response.Success(c, "FuelPass API", fiber.Map{
		"service": "fuelpass",
		"version": "1.0.0",
	})
}

// HealthCheck reports service and database health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "down"
		return c.Status(fiber.StatusServiceUnavailable).JSON(response.Response{
			Success: false,
			Message: "Service unhealthy",
			Data: fiber.Map{
				"database": dbStatus,
				"uptime":   time.Since(h.startedAt).String(),
			},
		})
	}

	return response.Success(c, "Service healthy", fiber.Map{
		"database": dbStatus,
		"uptime":   time.Since(h.startedAt).String(),
	})
}
