package health

import (
	"order-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)
}

// HandleHealth runs every probe.
// @Summary Health Check
// @Description Pings the store, the bucket and the event broker, and compares the sql schema with the models.
// @Tags health
// @Produce json
// @Success 200 {object} Report
// @Failure 503 {object} Report
// @Router /api/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	report := h.service.Run(c.Context())
	if !report.Healthy() {
		l := logger.WithRayID(h.service.logger, c)
		l.Debug("Reporting unhealthy", zap.String("status", report.Status))
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}
