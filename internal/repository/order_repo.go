package repository

import (
	"go-medistore/internal/model"
	"go-medistore/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderFilter holds the optional, AND-combined list filters
type OrderFilter struct {
	Status     *model.OrderStatus
	CustomerID *uuid.UUID
}

type OrderRepository interface {
	// CreateWithItems atomically inserts the order with its items and
	// decrements stock on every referenced medicine. Any failure rolls
	// back all writes; no partial decrement may persist.
	CreateWithItems(order *model.Order) error
	FindAll(f OrderFilter, p pagination.Params) ([]model.Order, int64, error)
	FindBySeller(sellerID uuid.UUID, p pagination.Params) ([]model.Order, int64, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	Update(order *model.Order) error
	// DeleteWithRestore atomically restores stock on every referenced
	// medicine, deletes the items, then deletes the order.
	DeleteWithRestore(order *model.Order) error
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) CreateWithItems(order *model.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Items are inserted through the association
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for _, item := range order.Items {
			res := tx.Model(&model.Medicine{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND stock >= ?", item.MedicineID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			// A concurrent order may have consumed the stock since the
			// service-level check; the guard catches that race.
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}
		return nil
	})
}

func (r *orderRepo) FindAll(f OrderFilter, p pagination.Params) ([]model.Order, int64, error) {
	query := r.db.Model(&model.Order{})

	if f.Status != nil {
		query = query.Where("status = ?", *f.Status)
	}
	if f.CustomerID != nil {
		query = query.Where("customer_id = ?", *f.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := query.
		Preload("Items").
		Preload("Items.Medicine", selectMedicineBrief).
		Preload("Customer", selectUserBrief).
		Order(p.OrderClause()).
		Limit(p.Limit).
		Offset(p.Skip).
		Find(&orders).Error
	return orders, total, err
}

// FindBySeller selects orders containing at least one item whose medicine
// belongs to the seller. Items are loaded in full; the service narrows
// them to the seller's own.
func (r *orderRepo) FindBySeller(sellerID uuid.UUID, p pagination.Params) ([]model.Order, int64, error) {
	base := r.db.Model(&model.Order{}).
		Where("orders.id IN (?)", r.db.Model(&model.OrderItem{}).
			Select("order_items.order_id").
			Joins("JOIN medicines ON medicines.id = order_items.medicine_id").
			Where("medicines.seller_id = ?", sellerID))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := base.
		Preload("Items").
		Preload("Items.Medicine").
		Preload("Customer", selectUserBrief).
		Order("orders." + p.OrderClause()).
		Limit(p.Limit).
		Offset(p.Skip).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.
		Preload("Items").
		Preload("Items.Medicine").
		Preload("Items.Medicine.Category").
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "phone")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepo) Update(order *model.Order) error {
	return r.db.Omit(clause.Associations).Save(order).Error
}

func (r *orderRepo) DeleteWithRestore(order *model.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			res := tx.Model(&model.Medicine{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", item.MedicineID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
		}
		if err := tx.Delete(&model.OrderItem{}, "order_id = ?", order.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Order{}, "id = ?", order.ID).Error
	})
}

// selectMedicineBrief narrows preloaded medicines to the list subset
func selectMedicineBrief(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "price", "manufacturer", "category_id", "seller_id")
}
