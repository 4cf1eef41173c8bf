package service

// In-memory repository fakes backing the service tests. They mimic the
// transactional guarantees of the gorm repositories: order creation and
// deletion mutate stock all-or-nothing.

import (
	"strings"

	"go-medistore/internal/model"
	"go-medistore/internal/repository"
	"go-medistore/pkg/pagination"

	"github.com/google/uuid"
)

type fakeStore struct {
	medicines  map[uuid.UUID]*model.Medicine
	orders     map[uuid.UUID]*model.Order
	reviews    map[uuid.UUID]*model.Review
	categories map[uuid.UUID]*model.Category
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		medicines:  make(map[uuid.UUID]*model.Medicine),
		orders:     make(map[uuid.UUID]*model.Order),
		reviews:    make(map[uuid.UUID]*model.Review),
		categories: make(map[uuid.UUID]*model.Category),
	}
}

func paginate[T any](items []T, p pagination.Params) []T {
	if p.Skip >= len(items) {
		return nil
	}
	end := p.Skip + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Skip:end]
}

// --- medicines ---

type fakeMedicineRepo struct {
	store *fakeStore
}

func (r *fakeMedicineRepo) Create(m *model.Medicine) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	copied := *m
	r.store.medicines[m.ID] = &copied
	return nil
}

func (r *fakeMedicineRepo) Search(f repository.MedicineFilter, p pagination.Params) ([]model.Medicine, int64, error) {
	var matched []model.Medicine
	for _, m := range r.store.medicines {
		if f.Search != "" &&
			!strings.Contains(strings.ToLower(m.Name), strings.ToLower(f.Search)) &&
			!strings.Contains(strings.ToLower(m.Manufacturer), strings.ToLower(f.Search)) {
			continue
		}
		if f.CategoryID != nil && m.CategoryID != *f.CategoryID {
			continue
		}
		if f.SellerID != nil && m.SellerID != *f.SellerID {
			continue
		}
		if f.MinPrice != nil && m.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && m.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		matched = append(matched, *m)
	}
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *fakeMedicineRepo) FindByID(id uuid.UUID) (*model.Medicine, error) {
	m, ok := r.store.medicines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMedicineRepo) FindByIDs(ids []uuid.UUID) ([]model.Medicine, error) {
	seen := make(map[uuid.UUID]bool)
	var out []model.Medicine
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if m, ok := r.store.medicines[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMedicineRepo) Update(m *model.Medicine) error {
	if _, ok := r.store.medicines[m.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *m
	r.store.medicines[m.ID] = &copied
	return nil
}

func (r *fakeMedicineRepo) Delete(id uuid.UUID) error {
	delete(r.store.medicines, id)
	return nil
}

// --- orders ---

type fakeOrderRepo struct {
	store *fakeStore
}

func (r *fakeOrderRepo) CreateWithItems(order *model.Order) error {
	// Guard check first so nothing mutates on failure
	for _, item := range order.Items {
		m, ok := r.store.medicines[item.MedicineID]
		if !ok || m.Stock < item.Quantity {
			return repository.ErrInsufficientStock
		}
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
		m := r.store.medicines[order.Items[i].MedicineID]
		m.Stock -= order.Items[i].Quantity
		snapshot := *m
		order.Items[i].Medicine = &snapshot
	}
	copied := *order
	r.store.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) FindAll(f repository.OrderFilter, p pagination.Params) ([]model.Order, int64, error) {
	var matched []model.Order
	for _, o := range r.store.orders {
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		if f.CustomerID != nil && o.CustomerID != *f.CustomerID {
			continue
		}
		matched = append(matched, *o)
	}
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *fakeOrderRepo) FindBySeller(sellerID uuid.UUID, p pagination.Params) ([]model.Order, int64, error) {
	var matched []model.Order
	for _, o := range r.store.orders {
		for _, item := range o.Items {
			if item.Medicine != nil && item.Medicine.SellerID == sellerID {
				matched = append(matched, *o)
				break
			}
		}
	}
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *fakeOrderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) Update(order *model.Order) error {
	if _, ok := r.store.orders[order.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *order
	r.store.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) DeleteWithRestore(order *model.Order) error {
	stored, ok := r.store.orders[order.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, item := range stored.Items {
		if m, ok := r.store.medicines[item.MedicineID]; ok {
			m.Stock += item.Quantity
		}
	}
	delete(r.store.orders, order.ID)
	return nil
}

// --- reviews ---

type fakeReviewRepo struct {
	store *fakeStore
}

func (r *fakeReviewRepo) Create(review *model.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	copied := *review
	r.store.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) FindByMedicine(medicineID uuid.UUID, p pagination.Params) ([]model.Review, int64, error) {
	var matched []model.Review
	for _, rev := range r.store.reviews {
		if rev.MedicineID == medicineID {
			matched = append(matched, *rev)
		}
	}
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *fakeReviewRepo) FindByID(id uuid.UUID) (*model.Review, error) {
	rev, ok := r.store.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *rev
	return &copied, nil
}

func (r *fakeReviewRepo) RatingCounts(medicineID uuid.UUID) (map[int]int64, error) {
	counts := make(map[int]int64)
	for _, rev := range r.store.reviews {
		if rev.MedicineID == medicineID {
			counts[rev.Rating]++
		}
	}
	return counts, nil
}

func (r *fakeReviewRepo) Delete(id uuid.UUID) error {
	delete(r.store.reviews, id)
	return nil
}

// --- categories ---

type fakeCategoryRepo struct {
	store *fakeStore
}

func (r *fakeCategoryRepo) Create(category *model.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	copied := *category
	r.store.categories[category.ID] = &copied
	return nil
}

func (r *fakeCategoryRepo) FindAll(p pagination.Params) ([]model.Category, int64, error) {
	var all []model.Category
	for _, c := range r.store.categories {
		all = append(all, *c)
	}
	return paginate(all, p), int64(len(all)), nil
}

func (r *fakeCategoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	c, ok := r.store.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCategoryRepo) FindByName(name string) (*model.Category, error) {
	for _, c := range r.store.categories {
		if c.Name == name {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCategoryRepo) Update(category *model.Category) error {
	if _, ok := r.store.categories[category.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *category
	r.store.categories[category.ID] = &copied
	return nil
}

func (r *fakeCategoryRepo) Delete(id uuid.UUID) error {
	delete(r.store.categories, id)
	return nil
}
