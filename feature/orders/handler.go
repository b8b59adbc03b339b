package orders

import (
	"errors"

	"order-manager/core/logger"
	"order-manager/core/models"
	"order-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Response is the body returned by order mutations.
type Response struct {
	OK     bool           `json:"ok"`
	Order  *models.Order  `json:"order,omitempty"`
	Stocks []models.Stock `json:"stocks,omitempty"`
}

// InsufficientStockResponse is returned when a size cannot cover the request.
type InsufficientStockResponse struct {
	Error     string `json:"error"`
	Available int    `json:"available"`
}

// Handler handles HTTP requests for orders.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the order routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/orders")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Put("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
}

// HandleList returns every order.
// @Summary List Orders
// @Description Returns all orders, newest first.
// @Tags orders
// @Produce json
// @Success 200 {array} models.Order
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/orders [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	orders, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(orders)
}

// HandleCreate places an order and reserves its quantity.
// @Summary Create Order
// @Description Reserves qty (default 1) of the given size and records the order.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body CreateInput true "Order"
// @Success 201 {object} Response
// @Failure 400 {object} InsufficientStockResponse "Validation error, unknown stock or not enough stock"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/orders [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	res, err := h.service.Create(c.Context(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(Response{OK: true, Order: res.Order, Stocks: res.Stocks})
}

// HandleUpdate patches an order and moves its reservation.
// @Summary Update Order
// @Description Applies a partial update. Item, size or qty changes are reconciled against stock.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param patch body Patch true "Fields to change"
// @Success 200 {object} Response
// @Failure 400 {object} InsufficientStockResponse "Validation error, unknown stock or not enough stock"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/orders/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var patch Patch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	res, err := h.service.Update(c.Context(), c.Params("id"), patch)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(Response{OK: true, Order: res.Order, Stocks: res.Stocks})
}

// HandleDelete removes an order and returns its quantity to stock.
// @Summary Delete Order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} Response
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/orders/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	res, err := h.service.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(Response{OK: true, Stocks: res.Stocks})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var insufficient *reconcile.InsufficientStockError
	var validation *ValidationError

	switch {
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusBadRequest).JSON(InsufficientStockResponse{
			Error:     "not enough stock",
			Available: insufficient.Available,
		})
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Error()})
	case errors.Is(err, reconcile.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrStockNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrStockNotFound.Error()})
	case errors.Is(err, ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrOrderNotFound.Error()})
	}

	l := logger.WithRayID(h.service.logger, c)
	l.Error("Order request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
