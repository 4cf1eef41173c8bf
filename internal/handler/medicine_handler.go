package handler

import (
	"go-medistore/internal/middleware"
	"go-medistore/internal/model"
	"go-medistore/internal/repository"
	"go-medistore/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MedicineHandler struct {
	service service.MedicineService
}

func NewMedicineHandler(s service.MedicineService) *MedicineHandler {
	return &MedicineHandler{service: s}
}

type createMedicineRequest struct {
	Name         string          `json:"name"`
	Manufacturer string          `json:"manufacturer"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	CategoryID   uuid.UUID       `json:"category_id"`
}

// Create handles POST /api/medicines (SELLER)
func (h *MedicineHandler) Create(c *fiber.Ctx) error {
	var req createMedicineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	medicine := model.Medicine{
		Name:         req.Name,
		Manufacturer: req.Manufacturer,
		Price:        req.Price,
		Stock:        req.Stock,
		CategoryID:   req.CategoryID,
	}

	seller := middleware.CurrentUser(c)
	if err := h.service.Create(&medicine, seller.ID); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(medicine)
}

// List handles GET /api/medicines (public). Filters are AND-combined.
func (h *MedicineHandler) List(c *fiber.Ctx) error {
	var filter repository.MedicineFilter

	filter.Search = c.Query("search")
	if raw := c.Query("categoryId"); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid categoryId"})
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("sellerId"); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid sellerId"})
		}
		filter.SellerID = &id
	}
	if raw := c.Query("minPrice"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid minPrice"})
		}
		filter.MinPrice = &min
	}
	if raw := c.Query("maxPrice"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid maxPrice"})
		}
		filter.MaxPrice = &max
	}

	medicines, meta, err := h.service.List(filter, pageParams(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(envelope(medicines, meta))
}

// GetByID handles GET /api/medicines/:id (public)
func (h *MedicineHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid medicine ID"})
	}

	medicine, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(medicine)
}

// Update handles PUT /api/medicines/:id (SELLER, ownership-checked)
func (h *MedicineHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid medicine ID"})
	}

	var input service.UpdateMedicineInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	seller := middleware.CurrentUser(c)
	medicine, err := h.service.Update(id, input, seller.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(medicine)
}

// Delete handles DELETE /api/medicines/:id (SELLER, ownership-checked)
func (h *MedicineHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid medicine ID"})
	}

	seller := middleware.CurrentUser(c)
	if err := h.service.Delete(id, seller.ID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Medicine deleted"})
}
