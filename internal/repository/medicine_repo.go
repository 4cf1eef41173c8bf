package repository

import (
	"go-medistore/internal/model"
	"go-medistore/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MedicineFilter holds the optional, AND-combined list filters
type MedicineFilter struct {
	Search     string // case-insensitive substring on name or manufacturer
	CategoryID *uuid.UUID
	SellerID   *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

type MedicineRepository interface {
	Create(medicine *model.Medicine) error
	Search(f MedicineFilter, p pagination.Params) ([]model.Medicine, int64, error)
	FindByID(id uuid.UUID) (*model.Medicine, error)
	FindByIDs(ids []uuid.UUID) ([]model.Medicine, error)
	Update(medicine *model.Medicine) error
	Delete(id uuid.UUID) error
}

type medicineRepo struct {
	db *gorm.DB
}

func NewMedicineRepo(db *gorm.DB) MedicineRepository {
	return &medicineRepo{db}
}

func (r *medicineRepo) Create(medicine *model.Medicine) error {
	return r.db.Create(medicine).Error
}

func (r *medicineRepo) Search(f MedicineFilter, p pagination.Params) ([]model.Medicine, int64, error) {
	query := r.db.Model(&model.Medicine{})

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where("name ILIKE ? OR manufacturer ILIKE ?", pattern, pattern)
	}
	if f.CategoryID != nil {
		query = query.Where("category_id = ?", *f.CategoryID)
	}
	if f.SellerID != nil {
		query = query.Where("seller_id = ?", *f.SellerID)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var medicines []model.Medicine
	err := query.
		Select("medicines.*, (?) AS review_count",
			r.db.Model(&model.Review{}).
				Select("COUNT(*)").
				Where("reviews.medicine_id = medicines.id")).
		Preload("Category").
		Preload("Seller", selectUserBrief).
		Order(p.OrderClause()).
		Limit(p.Limit).
		Offset(p.Skip).
		Find(&medicines).Error
	return medicines, total, err
}

func (r *medicineRepo) FindByID(id uuid.UUID) (*model.Medicine, error) {
	var medicine model.Medicine
	err := r.db.
		Preload("Category").
		Preload("Seller", selectUserBrief).
		Preload("Reviews").
		First(&medicine, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	medicine.ReviewCount = int64(len(medicine.Reviews))
	return &medicine, nil
}

func (r *medicineRepo) FindByIDs(ids []uuid.UUID) ([]model.Medicine, error) {
	var medicines []model.Medicine
	err := r.db.Find(&medicines, "id IN ?", ids).Error
	return medicines, err
}

func (r *medicineRepo) Update(medicine *model.Medicine) error {
	return r.db.Omit(clause.Associations).Save(medicine).Error
}

func (r *medicineRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Medicine{}, "id = ?", id).Error
}

// selectUserBrief narrows preloaded users to the abbreviated public subset
func selectUserBrief(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}
