package audit

import (
	"order-manager/core/logger"
	"order-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PurgeResponse is returned by the purge endpoint.
type PurgeResponse struct {
	Report   reconcile.Report `json:"report"`
	Executed int              `json:"executed"`
	DryRun   bool             `json:"dryRun"`
}

// Handler handles HTTP requests for the stock audit.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the audit routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reconcile")
	group.Get("/", h.HandleReport)
	group.Post("/purge", h.HandlePurge)
}

// HandleReport returns the audit of counters against orders.
// @Summary Audit Stock
// @Description Lists every stock size with its committed quantity and every order that no longer resolves to a stock size.
// @Tags reconcile
// @Produce json
// @Success 200 {object} reconcile.Report
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/reconcile [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	report, err := h.service.Report(c.Context())
	if err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("Audit failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandlePurge deletes orphan orders.
// @Summary Purge Orphan Orders
// @Description Deletes orders whose stock or size no longer exists. Pass dry_run=true to only plan.
// @Tags reconcile
// @Produce json
// @Param dry_run query boolean false "Plan without deleting"
// @Success 200 {object} PurgeResponse
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/reconcile/purge [post]
func (h *Handler) HandlePurge(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	dryRun := c.QueryBool("dry_run", false)

	opts := reconcile.Options{DoPurge: true, DryRun: dryRun, Confirmed: true}
	report, executed, err := h.service.Apply(c.Context(), opts)
	if err != nil {
		l.Error("Purge failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Purge requested", zap.Bool("dry_run", dryRun), zap.Int("executed", executed))
	return c.JSON(PurgeResponse{Report: report, Executed: executed, DryRun: dryRun})
}
