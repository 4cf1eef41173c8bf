package handler

import (
	"strings"

	"go-medistore/internal/middleware"
	"go-medistore/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: s}
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Create handles POST /api/reviews/:medicineId (CUSTOMER, ADMIN)
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	medicineID, err := parseUUID(c.Params("medicineId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid medicine ID"})
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.Status(400).JSON(fiber.Map{"error": "Rating must be between 1 and 5"})
	}
	if strings.TrimSpace(req.Comment) == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Comment is required and cannot be empty"})
	}

	user := middleware.CurrentUser(c)
	review, err := h.service.Create(medicineID, user.ID, req.Rating, req.Comment)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(review)
}

// List handles GET /api/reviews/:medicineId (public)
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	medicineID, err := parseUUID(c.Params("medicineId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid medicine ID"})
	}

	reviews, meta, err := h.service.ListByMedicine(medicineID, pageParams(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(envelope(reviews, meta))
}

// Stats handles GET /api/reviews/:medicineId/stats (public)
func (h *ReviewHandler) Stats(c *fiber.Ctx) error {
	medicineID, err := parseUUID(c.Params("medicineId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid medicine ID"})
	}

	stats, err := h.service.Stats(medicineID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}

// Delete handles DELETE /api/reviews/:reviewId (author CUSTOMER or ADMIN)
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	reviewID, err := parseUUID(c.Params("reviewId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid review ID"})
	}

	user := middleware.CurrentUser(c)
	if err := h.service.Delete(reviewID, user.ID, user.Role); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review deleted successfully"})
}
