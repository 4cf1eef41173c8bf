package handler

import (
	"go-medistore/internal/middleware"
	"go-medistore/internal/model"
	"go-medistore/internal/repository"
	"go-medistore/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

type createOrderRequest struct {
	Items   []service.OrderItemInput `json:"items"`
	Address string                   `json:"address"`
}

type updateOrderRequest struct {
	Status  *model.OrderStatus `json:"status"`
	Address *string            `json:"address"`
}

// listScopes shapes the list query per role instead of branching inline.
// SELLER is absent here: it takes the seller-scoped path in List.
var listScopes = map[model.Role]func(user *middleware.AuthUser, c *fiber.Ctx, f *repository.OrderFilter){
	// Customers only ever see their own orders
	model.RoleCustomer: func(user *middleware.AuthUser, c *fiber.Ctx, f *repository.OrderFilter) {
		f.CustomerID = &user.ID
	},
	// Admins may filter by any customer
	model.RoleAdmin: func(user *middleware.AuthUser, c *fiber.Ctx, f *repository.OrderFilter) {
		if raw := c.Query("customerId"); raw != "" {
			if id, err := parseUUID(raw); err == nil {
				f.CustomerID = &id
			}
		}
	},
}

// Create handles POST /api/orders (CUSTOMER)
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if len(req.Items) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Items array is required and must not be empty"})
	}
	if req.Address == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Valid address is required"})
	}
	for _, item := range req.Items {
		if item.MedicineID == uuid.Nil || item.Quantity <= 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Each item must have medicineId and a positive quantity"})
		}
	}

	user := middleware.CurrentUser(c)
	order, err := h.service.Create(service.CreateOrderInput{
		CustomerID: user.ID,
		Address:    req.Address,
		Items:      req.Items,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(order)
}

// List handles GET /api/orders (role-scoped)
func (h *OrderHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	p := pageParams(c)

	if user.Role == model.RoleSeller {
		views, meta, err := h.service.ListForSeller(user.ID, p)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(envelope(views, meta))
	}

	var filter repository.OrderFilter
	if raw := c.Query("status"); raw != "" {
		status := model.OrderStatus(raw)
		if !status.Valid() {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid order status"})
		}
		filter.Status = &status
	}
	if scope, ok := listScopes[user.Role]; ok {
		scope(user, c, &filter)
	}

	orders, meta, err := h.service.List(filter, p)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(envelope(orders, meta))
}

// GetByID handles GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	user := middleware.CurrentUser(c)

	// Sellers only see orders holding their own items, and only the
	// narrowed view of those
	if user.Role == model.RoleSeller {
		view, err := h.service.GetForSeller(id, user.ID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(view)
	}

	order, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}

	// Customers are restricted to their own orders
	if user.Role == model.RoleCustomer && order.CustomerID != user.ID {
		return c.Status(403).JSON(fiber.Map{"error": "You can only view your own orders"})
	}
	return c.JSON(order)
}

// Update handles PUT /api/orders/:id (ADMIN or owning SELLER)
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req updateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Status != nil && !req.Status.Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order status"})
	}

	user := middleware.CurrentUser(c)
	order, err := h.service.Update(id, service.UpdateOrderInput{
		Status:  req.Status,
		Address: req.Address,
	}, user.ID, user.Role)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}

// Delete handles DELETE /api/orders/:id (ADMIN or owning SELLER)
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	user := middleware.CurrentUser(c)
	if err := h.service.Delete(id, user.ID, user.Role); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order deleted and stock restored"})
}
