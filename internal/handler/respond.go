package handler

import (
	"errors"
	"log"

	"go-medistore/internal/repository"
	"go-medistore/internal/service"
	"go-medistore/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// fail maps a service or repository error to its HTTP status and body
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrMedicineNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		return c.Status(403).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateCategory):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrInsufficientStock),
		errors.Is(err, service.ErrMultipleSellers),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidRole):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}

// envelope is the common list response shape
func envelope(data interface{}, meta pagination.Meta) fiber.Map {
	return fiber.Map{"data": data, "pagination": meta}
}

// pageParams resolves the common page/limit/sort query parameters
func pageParams(c *fiber.Ctx) pagination.Params {
	return pagination.Resolve(pagination.Options{
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	})
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
