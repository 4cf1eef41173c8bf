package handler

import (
	"strings"

	"go-medistore/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(s service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

type categoryRequest struct {
	Name string `json:"name"`
}

// Create handles POST /api/categories (ADMIN)
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Category name is required"})
	}

	category, err := h.service.Create(strings.TrimSpace(req.Name))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(category)
}

// List handles GET /api/categories (public)
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, meta, err := h.service.List(pageParams(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(envelope(categories, meta))
}

// GetByID handles GET /api/categories/:id (public)
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	category, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(category)
}

// Update handles PUT /api/categories/:id (ADMIN)
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Category name is required"})
	}

	category, err := h.service.Update(id, strings.TrimSpace(req.Name))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(category)
}

// Delete handles DELETE /api/categories/:id (ADMIN)
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}
