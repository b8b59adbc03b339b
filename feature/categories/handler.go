package categories

import (
	"errors"

	"order-manager/core/logger"
	"order-manager/core/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Response is the body returned by category mutations.
type Response struct {
	OK       bool             `json:"ok"`
	Category *models.Category `json:"category,omitempty"`
	Removed  *Removed         `json:"removed,omitempty"`
}

// Handler handles HTTP requests for categories.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the category routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/categories")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Delete("/:slug", h.HandleDelete)
}

// HandleList returns every category.
// @Summary List Categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /api/categories [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(categories)
}

// HandleCreate adds a category.
// @Summary Create Category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body CreateInput true "Category"
// @Success 201 {object} Response
// @Failure 400 {object} map[string]string "Missing or duplicate slug"
// @Router /api/categories [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	category, err := h.service.Create(c.Context(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(Response{OK: true, Category: category})
}

// HandleDelete removes a category with its stocks and orders.
// @Summary Delete Category
// @Description Cascades to every stock in the category and to orders that reference them.
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} Response
// @Failure 404 {object} map[string]string "Category not found"
// @Router /api/categories/{slug} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	removed, err := h.service.Delete(c.Context(), c.Params("slug"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(Response{OK: true, Removed: &removed})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalid), errors.Is(err, ErrExists):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": ErrNotFound.Error()})
	}

	l := logger.WithRayID(h.service.logger, c)
	l.Error("Category request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
