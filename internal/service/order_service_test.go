package service

import (
	"errors"
	"testing"

	"go-medistore/internal/model"
	"go-medistore/internal/repository"
	"go-medistore/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func setupOrders(t *testing.T) (*fakeStore, OrderService) {
	t.Helper()
	store := newFakeStore()
	medicineRepo := &fakeMedicineRepo{store: store}
	orderRepo := &fakeOrderRepo{store: store}
	return store, NewOrderService(orderRepo, medicineRepo)
}

func addMedicine(store *fakeStore, sellerID uuid.UUID, name string, price int64, stock int) *model.Medicine {
	m := &model.Medicine{
		Name:         name,
		Manufacturer: "Acme Labs",
		Price:        decimal.NewFromInt(price),
		Stock:        stock,
		CategoryID:   uuid.New(),
		SellerID:     sellerID,
	}
	m.ID = uuid.New()
	store.medicines[m.ID] = m
	return m
}

func defaultPage() pagination.Params {
	return pagination.Resolve(pagination.Options{})
}

func TestCreateOrderTotals(t *testing.T) {
	store, orders := setupOrders(t)
	seller := uuid.New()
	customer := uuid.New()
	paracetamol := addMedicine(store, seller, "Paracetamol", 5, 100)

	order, err := orders.Create(CreateOrderInput{
		CustomerID: customer,
		Address:    "12 Harbor Street",
		Items:      []OrderItemInput{{MedicineID: paracetamol.ID, Quantity: 10}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if store.medicines[paracetamol.ID].Stock != 90 {
		t.Fatalf("stock: got %d, want 90", store.medicines[paracetamol.ID].Stock)
	}
	if !order.SubTotal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("subTotal: got %s, want 50", order.SubTotal)
	}
	if !order.TaxAmount.Equal(decimal.RequireFromString("2.5")) {
		t.Fatalf("taxAmount: got %s, want 2.5", order.TaxAmount)
	}
	if !order.ShippingFee.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("shippingFee: got %s, want 80", order.ShippingFee)
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("132.5")) {
		t.Fatalf("totalAmount: got %s, want 132.5", order.TotalAmount)
	}
	if order.Status != model.OrderPending {
		t.Fatalf("status: got %s, want PENDING", order.Status)
	}
	if order.SellerID != seller {
		t.Fatalf("sellerID not derived from items")
	}
	if len(order.Items) != 1 || !order.Items[0].Price.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("item price snapshot missing: %+v", order.Items)
	}
}

func TestCreateOrderMultipleSellers(t *testing.T) {
	store, orders := setupOrders(t)
	m1 := addMedicine(store, uuid.New(), "Aspirin", 3, 50)
	m2 := addMedicine(store, uuid.New(), "Ibuprofen", 4, 50)

	_, err := orders.Create(CreateOrderInput{
		CustomerID: uuid.New(),
		Address:    "addr",
		Items: []OrderItemInput{
			{MedicineID: m1.ID, Quantity: 1},
			{MedicineID: m2.ID, Quantity: 1},
		},
	})
	if !errors.Is(err, ErrMultipleSellers) {
		t.Fatalf("expected ErrMultipleSellers, got %v", err)
	}
	if store.medicines[m1.ID].Stock != 50 || store.medicines[m2.ID].Stock != 50 {
		t.Fatalf("stock changed on rejected order")
	}
	if len(store.orders) != 0 {
		t.Fatalf("order persisted on rejected create")
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	store, orders := setupOrders(t)
	seller := uuid.New()
	m1 := addMedicine(store, seller, "Aspirin", 3, 50)
	m2 := addMedicine(store, seller, "Ibuprofen", 4, 2)

	_, err := orders.Create(CreateOrderInput{
		CustomerID: uuid.New(),
		Address:    "addr",
		Items: []OrderItemInput{
			{MedicineID: m1.ID, Quantity: 10},
			{MedicineID: m2.ID, Quantity: 3},
		},
	})
	if !errors.Is(err, repository.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	// Atomicity: no stock change for any item in the rejected request
	if store.medicines[m1.ID].Stock != 50 || store.medicines[m2.ID].Stock != 2 {
		t.Fatalf("partial stock mutation on rejected order")
	}
}

func TestCreateOrderUnknownMedicine(t *testing.T) {
	store, orders := setupOrders(t)
	m := addMedicine(store, uuid.New(), "Aspirin", 3, 50)

	_, err := orders.Create(CreateOrderInput{
		CustomerID: uuid.New(),
		Address:    "addr",
		Items: []OrderItemInput{
			{MedicineID: m.ID, Quantity: 1},
			{MedicineID: uuid.New(), Quantity: 1},
		},
	})
	if !errors.Is(err, ErrMedicineNotFound) {
		t.Fatalf("expected ErrMedicineNotFound, got %v", err)
	}
}

func TestDeleteOrderRestoresStock(t *testing.T) {
	store, orders := setupOrders(t)
	seller := uuid.New()
	m := addMedicine(store, seller, "Paracetamol", 5, 100)

	order, err := orders.Create(CreateOrderInput{
		CustomerID: uuid.New(),
		Address:    "addr",
		Items:      []OrderItemInput{{MedicineID: m.ID, Quantity: 25}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if store.medicines[m.ID].Stock != 75 {
		t.Fatalf("stock after create: got %d, want 75", store.medicines[m.ID].Stock)
	}

	if err := orders.Delete(order.ID, uuid.New(), model.RoleAdmin); err != nil {
		t.Fatalf("delete order: %v", err)
	}
	if store.medicines[m.ID].Stock != 100 {
		t.Fatalf("stock after delete: got %d, want 100", store.medicines[m.ID].Stock)
	}
	if len(store.orders) != 0 {
		t.Fatalf("order still present after delete")
	}
}

func TestSellerCannotTouchForeignOrder(t *testing.T) {
	store, orders := setupOrders(t)
	owner := uuid.New()
	m := addMedicine(store, owner, "Paracetamol", 5, 100)

	order, err := orders.Create(CreateOrderInput{
		CustomerID: uuid.New(),
		Address:    "addr",
		Items:      []OrderItemInput{{MedicineID: m.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	stranger := uuid.New()
	status := model.OrderShipped

	t.Run("update", func(t *testing.T) {
		_, err := orders.Update(order.ID, UpdateOrderInput{Status: &status}, stranger, model.RoleSeller)
		if !errors.Is(err, ErrNotOwner) {
			t.Fatalf("expected ErrNotOwner, got %v", err)
		}
	})
	t.Run("delete", func(t *testing.T) {
		if err := orders.Delete(order.ID, stranger, model.RoleSeller); !errors.Is(err, ErrNotOwner) {
			t.Fatalf("expected ErrNotOwner, got %v", err)
		}
	})
	t.Run("owner update applies only provided fields", func(t *testing.T) {
		updated, err := orders.Update(order.ID, UpdateOrderInput{Status: &status}, owner, model.RoleSeller)
		if err != nil {
			t.Fatalf("owner update: %v", err)
		}
		if updated.Status != model.OrderShipped {
			t.Fatalf("status not applied: %s", updated.Status)
		}
		if updated.Address != "addr" {
			t.Fatalf("address changed unexpectedly: %q", updated.Address)
		}
	})
}

func TestSellerScopedView(t *testing.T) {
	store, orders := setupOrders(t)
	sellerA := uuid.New()
	sellerB := uuid.New()
	mA := addMedicine(store, sellerA, "Paracetamol", 10, 100)
	mB := addMedicine(store, sellerB, "Vitamin C", 20, 100)

	// A mixed-seller order can predate the single-seller invariant;
	// build one directly in the store.
	order := &model.Order{
		CustomerID: uuid.New(),
		Address:    "addr",
		SubTotal:   decimal.NewFromInt(70),
		Status:     model.OrderPending,
		Items: []model.OrderItem{
			{MedicineID: mA.ID, Medicine: mA, Quantity: 3, Price: mA.Price},
			{MedicineID: mB.ID, Medicine: mB, Quantity: 2, Price: mB.Price},
		},
	}
	order.ID = uuid.New()
	store.orders[order.ID] = order

	views, meta, err := orders.ListForSeller(sellerA, defaultPage())
	if err != nil {
		t.Fatalf("list for seller: %v", err)
	}
	if meta.Total != 1 || len(views) != 1 {
		t.Fatalf("expected exactly one order, got %d", len(views))
	}

	view := views[0]
	if len(view.Items) != 1 || view.Items[0].MedicineID != mA.ID {
		t.Fatalf("items not narrowed to seller: %+v", view.Items)
	}
	// Recomputed from seller A's items only: 3 x 10 = 30, tax 1.5, shipping 0
	if !view.SubTotal.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("view subTotal: got %s, want 30", view.SubTotal)
	}
	if !view.TaxAmount.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("view taxAmount: got %s, want 1.5", view.TaxAmount)
	}
	if !view.ShippingFee.IsZero() {
		t.Fatalf("view shippingFee: got %s, want 0", view.ShippingFee)
	}
	if !view.TotalAmount.Equal(decimal.RequireFromString("31.5")) {
		t.Fatalf("view totalAmount: got %s, want 31.5", view.TotalAmount)
	}
	// Persisted totals untouched
	if !store.orders[order.ID].SubTotal.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("persisted subTotal changed")
	}

	// Seller B sees the complementary view of the same order
	views, _, err = orders.ListForSeller(sellerB, defaultPage())
	if err != nil {
		t.Fatalf("list for seller B: %v", err)
	}
	if len(views) != 1 || len(views[0].Items) != 1 || views[0].Items[0].MedicineID != mB.ID {
		t.Fatalf("seller B view wrong: %+v", views)
	}
	if !views[0].SubTotal.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("seller B subTotal: got %s, want 40", views[0].SubTotal)
	}
}

func TestSellerOrderDetail(t *testing.T) {
	store, orders := setupOrders(t)
	seller := uuid.New()
	m := addMedicine(store, seller, "Paracetamol", 10, 100)

	order, err := orders.Create(CreateOrderInput{
		CustomerID: uuid.New(),
		Address:    "addr",
		Items:      []OrderItemInput{{MedicineID: m.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	t.Run("stranger gets ErrNotOwner", func(t *testing.T) {
		if _, err := orders.GetForSeller(order.ID, uuid.New()); !errors.Is(err, ErrNotOwner) {
			t.Fatalf("expected ErrNotOwner, got %v", err)
		}
	})
	t.Run("owner gets the narrowed view", func(t *testing.T) {
		view, err := orders.GetForSeller(order.ID, seller)
		if err != nil {
			t.Fatalf("get for seller: %v", err)
		}
		if view.ID != order.ID || len(view.Items) != 1 {
			t.Fatalf("view wrong: %+v", view)
		}
		if !view.SubTotal.Equal(decimal.NewFromInt(30)) || !view.ShippingFee.IsZero() {
			t.Fatalf("view totals not recomputed: sub %s, shipping %s", view.SubTotal, view.ShippingFee)
		}
	})
	t.Run("unknown order", func(t *testing.T) {
		if _, err := orders.GetForSeller(uuid.New(), seller); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestListFiltersByStatusAndCustomer(t *testing.T) {
	store, orders := setupOrders(t)
	seller := uuid.New()
	m := addMedicine(store, seller, "Paracetamol", 5, 1000)

	customerA := uuid.New()
	customerB := uuid.New()
	for _, customer := range []uuid.UUID{customerA, customerA, customerB} {
		if _, err := orders.Create(CreateOrderInput{
			CustomerID: customer,
			Address:    "addr",
			Items:      []OrderItemInput{{MedicineID: m.ID, Quantity: 1}},
		}); err != nil {
			t.Fatalf("create order: %v", err)
		}
	}

	got, meta, err := orders.List(repository.OrderFilter{CustomerID: &customerA}, defaultPage())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if meta.Total != 2 || len(got) != 2 {
		t.Fatalf("customer filter: got %d orders, want 2", len(got))
	}

	status := model.OrderDelivered
	got, meta, err = orders.List(repository.OrderFilter{Status: &status}, defaultPage())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if meta.Total != 0 || len(got) != 0 {
		t.Fatalf("status filter: got %d orders, want 0", len(got))
	}
}
