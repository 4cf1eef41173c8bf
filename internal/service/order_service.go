package service

import (
	"errors"
	"fmt"
	"time"

	"go-medistore/internal/model"
	"go-medistore/internal/repository"
	"go-medistore/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrMedicineNotFound = errors.New("medicine not found")
	ErrMultipleSellers  = errors.New("all order items must belong to a single seller")
	ErrNotOwner         = errors.New("caller does not own this resource")
)

// Pricing constants. Discount is an extension point kept at zero.
var (
	taxRate     = decimal.RequireFromString("0.05")
	shippingFee = decimal.NewFromInt(80)
)

// CreateOrderInput is the validated payload for order creation
type CreateOrderInput struct {
	CustomerID uuid.UUID
	Address    string
	Items      []OrderItemInput
}

type OrderItemInput struct {
	MedicineID uuid.UUID `json:"medicine_id" validate:"uuid_required"`
	Quantity   int       `json:"quantity" validate:"required,gt=0"`
}

// UpdateOrderInput applies only the provided fields
type UpdateOrderInput struct {
	Status  *model.OrderStatus
	Address *string
}

// SellerOrderView is an order narrowed to one seller's items, with totals
// recomputed from those items only. The recomputed totals are derived per
// request and never persisted.
type SellerOrderView struct {
	ID             uuid.UUID         `json:"id"`
	CustomerID     uuid.UUID         `json:"customer_id"`
	Customer       *model.User       `json:"customer,omitempty"`
	Address        string            `json:"address"`
	Status         model.OrderStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	Items          []model.OrderItem `json:"items"`
	SubTotal       decimal.Decimal   `json:"sub_total"`
	TaxAmount      decimal.Decimal   `json:"tax_amount"`
	ShippingFee    decimal.Decimal   `json:"shipping_fee"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	TotalAmount    decimal.Decimal   `json:"total_amount"`
}

type OrderService interface {
	Create(input CreateOrderInput) (*model.Order, error)
	List(f repository.OrderFilter, p pagination.Params) ([]model.Order, pagination.Meta, error)
	ListForSeller(sellerID uuid.UUID, p pagination.Params) ([]SellerOrderView, pagination.Meta, error)
	GetByID(id uuid.UUID) (*model.Order, error)
	GetForSeller(orderID, sellerID uuid.UUID) (*SellerOrderView, error)
	Update(orderID uuid.UUID, input UpdateOrderInput, userID uuid.UUID, role model.Role) (*model.Order, error)
	Delete(orderID, userID uuid.UUID, role model.Role) error
}

type orderService struct {
	orderRepo    repository.OrderRepository
	medicineRepo repository.MedicineRepository
}

func NewOrderService(orderRepo repository.OrderRepository, medicineRepo repository.MedicineRepository) OrderService {
	return &orderService{orderRepo: orderRepo, medicineRepo: medicineRepo}
}

func (s *orderService) Create(input CreateOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrMedicineNotFound
	}

	unique := make(map[uuid.UUID]struct{}, len(input.Items))
	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		if _, seen := unique[item.MedicineID]; seen {
			continue
		}
		unique[item.MedicineID] = struct{}{}
		ids = append(ids, item.MedicineID)
	}

	medicines, err := s.medicineRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(medicines) != len(ids) {
		return nil, ErrMedicineNotFound
	}

	medicineByID := make(map[uuid.UUID]model.Medicine, len(medicines))
	for _, m := range medicines {
		medicineByID[m.ID] = m
	}

	// Single-seller-per-order invariant
	sellerID := medicines[0].SellerID
	for _, m := range medicines {
		if m.SellerID != sellerID {
			return nil, ErrMultipleSellers
		}
	}

	// Stock availability check before touching the database
	for _, item := range input.Items {
		m := medicineByID[item.MedicineID]
		if m.Stock < item.Quantity {
			return nil, fmt.Errorf("%w for %s: available %d, requested %d",
				repository.ErrInsufficientStock, m.Name, m.Stock, item.Quantity)
		}
	}

	subTotal := decimal.Zero
	items := make([]model.OrderItem, len(input.Items))
	for i, item := range input.Items {
		m := medicineByID[item.MedicineID]
		items[i] = model.OrderItem{
			MedicineID: item.MedicineID,
			Quantity:   item.Quantity,
			Price:      m.Price, // snapshot at order time
		}
		subTotal = subTotal.Add(items[i].LineTotal())
	}

	taxAmount := subTotal.Mul(taxRate).Round(2)
	discountAmount := decimal.Zero
	totalAmount := subTotal.Add(taxAmount).Add(shippingFee).Sub(discountAmount)

	order := &model.Order{
		CustomerID:     input.CustomerID,
		SellerID:       sellerID,
		Address:        input.Address,
		SubTotal:       subTotal,
		TaxAmount:      taxAmount,
		ShippingFee:    shippingFee,
		DiscountAmount: discountAmount,
		TotalAmount:    totalAmount,
		Status:         model.OrderPending,
		Items:          items,
	}

	if err := s.orderRepo.CreateWithItems(order); err != nil {
		return nil, err
	}

	// Reload for the eager-loaded items, medicine and customer detail
	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) List(f repository.OrderFilter, p pagination.Params) ([]model.Order, pagination.Meta, error) {
	orders, total, err := s.orderRepo.FindAll(f, p)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return orders, pagination.NewMeta(total, p), nil
}

func (s *orderService) ListForSeller(sellerID uuid.UUID, p pagination.Params) ([]SellerOrderView, pagination.Meta, error) {
	orders, total, err := s.orderRepo.FindBySeller(sellerID, p)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	views := make([]SellerOrderView, len(orders))
	for i := range orders {
		views[i] = newSellerOrderView(&orders[i], sellerID)
	}
	return views, pagination.NewMeta(total, p), nil
}

// newSellerOrderView narrows the order to the seller's items and recomputes
// the totals as a display-only view. Shipping is zero in this view; a
// multi-seller order therefore shows different virtual totals to each
// seller without the persisted totals changing.
func newSellerOrderView(order *model.Order, sellerID uuid.UUID) SellerOrderView {
	var items []model.OrderItem
	subTotal := decimal.Zero
	for _, item := range order.Items {
		if item.Medicine == nil || item.Medicine.SellerID != sellerID {
			continue
		}
		items = append(items, item)
		subTotal = subTotal.Add(item.LineTotal())
	}

	taxAmount := subTotal.Mul(taxRate).Round(2)

	return SellerOrderView{
		ID:             order.ID,
		CustomerID:     order.CustomerID,
		Customer:       order.Customer,
		Address:        order.Address,
		Status:         order.Status,
		CreatedAt:      order.CreatedAt,
		Items:          items,
		SubTotal:       subTotal,
		TaxAmount:      taxAmount,
		ShippingFee:    decimal.Zero,
		DiscountAmount: decimal.Zero,
		TotalAmount:    subTotal.Add(taxAmount),
	}
}

func (s *orderService) GetByID(id uuid.UUID) (*model.Order, error) {
	return s.orderRepo.FindByID(id)
}

// GetForSeller returns the seller-narrowed view of a single order. Sellers
// holding none of the order's items get ErrNotOwner.
func (s *orderService) GetForSeller(orderID, sellerID uuid.UUID) (*SellerOrderView, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if !sellerOwnsAnyItem(order, sellerID) {
		return nil, ErrNotOwner
	}

	view := newSellerOrderView(order, sellerID)
	return &view, nil
}

func (s *orderService) Update(orderID uuid.UUID, input UpdateOrderInput, userID uuid.UUID, role model.Role) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}

	if role == model.RoleSeller && !sellerOwnsAnyItem(order, userID) {
		return nil, ErrNotOwner
	}

	if input.Status != nil {
		order.Status = *input.Status
	}
	if input.Address != nil {
		order.Address = *input.Address
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Delete(orderID, userID uuid.UUID, role model.Role) error {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return err
	}

	if role == model.RoleSeller && !sellerOwnsAnyItem(order, userID) {
		return ErrNotOwner
	}

	return s.orderRepo.DeleteWithRestore(order)
}

func sellerOwnsAnyItem(order *model.Order, sellerID uuid.UUID) bool {
	for _, item := range order.Items {
		if item.Medicine != nil && item.Medicine.SellerID == sellerID {
			return true
		}
	}
	return false
}
