package stocks

import (
	"errors"

	"order-manager/core/logger"
	"order-manager/core/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Response is the body returned by stock mutations.
type Response struct {
	OK    bool          `json:"ok"`
	Stock *models.Stock `json:"stock,omitempty"`
}

// Handler handles HTTP requests for stocks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the stock routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/stocks")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Put("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
}

// HandleList returns every stock.
// @Summary List Stocks
// @Tags stocks
// @Produce json
// @Success 200 {array} models.Stock
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/stocks [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	stocks, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stocks)
}

// HandleCreate adds a stock.
// @Summary Create Stock
// @Tags stocks
// @Accept json
// @Produce json
// @Param stock body CreateInput true "Stock"
// @Success 201 {object} Response
// @Failure 400 {object} map[string]string "Missing category or name"
// @Router /api/stocks [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	stock, err := h.service.Create(c.Context(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(Response{OK: true, Stock: stock})
}

// HandleUpdate edits a stock.
// @Summary Update Stock
// @Tags stocks
// @Accept json
// @Produce json
// @Param id path string true "Stock ID"
// @Param patch body Patch true "Fields to change"
// @Success 200 {object} Response
// @Failure 404 {object} map[string]string "Stock not found"
// @Router /api/stocks/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var patch Patch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	stock, err := h.service.Update(c.Context(), c.Params("id"), patch)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(Response{OK: true, Stock: stock})
}

// HandleDelete removes a stock.
// @Summary Delete Stock
// @Tags stocks
// @Produce json
// @Param id path string true "Stock ID"
// @Success 200 {object} Response
// @Failure 404 {object} map[string]string "Stock not found"
// @Router /api/stocks/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(Response{OK: true})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrNotFound.Error()})
	}

	l := logger.WithRayID(h.service.logger, c)
	l.Error("Stock request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
