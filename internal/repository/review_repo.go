package repository

import (
	"go-medistore/internal/model"
	"go-medistore/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByMedicine(medicineID uuid.UUID, p pagination.Params) ([]model.Review, int64, error)
	FindByID(id uuid.UUID) (*model.Review, error)
	// RatingCounts returns how many reviews the medicine has per rating value
	RatingCounts(medicineID uuid.UUID) (map[int]int64, error)
	Delete(id uuid.UUID) error
}

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db}
}

func (r *reviewRepo) Create(review *model.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return err
	}
	return r.db.Preload("Customer", selectUserBrief).First(review, "id = ?", review.ID).Error
}

func (r *reviewRepo) FindByMedicine(medicineID uuid.UUID, p pagination.Params) ([]model.Review, int64, error) {
	query := r.db.Model(&model.Review{}).Where("medicine_id = ?", medicineID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []model.Review
	err := query.
		Preload("Customer", selectUserBrief).
		Order(p.OrderClause()).
		Limit(p.Limit).
		Offset(p.Skip).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *reviewRepo) FindByID(id uuid.UUID) (*model.Review, error) {
	var review model.Review
	err := r.db.Preload("Customer", selectUserBrief).First(&review, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (r *reviewRepo) RatingCounts(medicineID uuid.UUID) (map[int]int64, error) {
	rows, err := r.db.Model(&model.Review{}).
		Select("rating, COUNT(*) as count").
		Where("medicine_id = ?", medicineID).
		Group("rating").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int64)
	for rows.Next() {
		var rating int
		var count int64
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		counts[rating] = count
	}
	return counts, rows.Err()
}

func (r *reviewRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Review{}, "id = ?", id).Error
}
