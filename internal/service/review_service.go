package service

import (
	"math"
	"strconv"

	"go-medistore/internal/model"
	"go-medistore/internal/repository"
	"go-medistore/pkg/pagination"

	"github.com/google/uuid"
)

type ReviewService interface {
	Create(medicineID, customerID uuid.UUID, rating int, comment string) (*model.Review, error)
	ListByMedicine(medicineID uuid.UUID, p pagination.Params) ([]model.Review, pagination.Meta, error)
	Stats(medicineID uuid.UUID) (*model.ReviewStats, error)
	Delete(reviewID, userID uuid.UUID, role model.Role) error
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	medicineRepo repository.MedicineRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, medicineRepo repository.MedicineRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, medicineRepo: medicineRepo}
}

// Create assumes rating and comment were validated by the caller
func (s *reviewService) Create(medicineID, customerID uuid.UUID, rating int, comment string) (*model.Review, error) {
	if _, err := s.medicineRepo.FindByID(medicineID); err != nil {
		return nil, err
	}

	review := &model.Review{
		MedicineID: medicineID,
		CustomerID: customerID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListByMedicine(medicineID uuid.UUID, p pagination.Params) ([]model.Review, pagination.Meta, error) {
	if _, err := s.medicineRepo.FindByID(medicineID); err != nil {
		return nil, pagination.Meta{}, err
	}

	reviews, total, err := s.reviewRepo.FindByMedicine(medicineID, p)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return reviews, pagination.NewMeta(total, p), nil
}

func (s *reviewService) Stats(medicineID uuid.UUID) (*model.ReviewStats, error) {
	if _, err := s.medicineRepo.FindByID(medicineID); err != nil {
		return nil, err
	}

	counts, err := s.reviewRepo.RatingCounts(medicineID)
	if err != nil {
		return nil, err
	}

	stats := &model.ReviewStats{
		MedicineID:         medicineID,
		RatingDistribution: map[string]int64{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
	}

	var ratingSum int64
	for rating := 1; rating <= 5; rating++ {
		count := counts[rating]
		stats.RatingDistribution[strconv.Itoa(rating)] = count
		stats.TotalReviews += count
		ratingSum += int64(rating) * count
	}

	if stats.TotalReviews > 0 {
		avg := float64(ratingSum) / float64(stats.TotalReviews)
		stats.AverageRating = math.Round(avg*10) / 10
	}

	return stats, nil
}

func (s *reviewService) Delete(reviewID, userID uuid.UUID, role model.Role) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		return err
	}

	// Authors may delete their own reviews; admins may delete any
	if role == model.RoleCustomer && review.CustomerID != userID {
		return ErrNotOwner
	}

	return s.reviewRepo.Delete(reviewID)
}
