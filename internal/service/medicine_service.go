package service

import (
	"errors"
	"fmt"

	"go-medistore/internal/model"
	"go-medistore/internal/repository"
	"go-medistore/pkg/pagination"
	"go-medistore/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrValidation = errors.New("validation failed")

// UpdateMedicineInput applies only the provided fields
type UpdateMedicineInput struct {
	Name         *string          `json:"name"`
	Manufacturer *string          `json:"manufacturer"`
	Price        *decimal.Decimal `json:"price"`
	Stock        *int             `json:"stock"`
	CategoryID   *uuid.UUID       `json:"category_id"`
}

type MedicineService interface {
	Create(medicine *model.Medicine, sellerID uuid.UUID) error
	List(f repository.MedicineFilter, p pagination.Params) ([]model.Medicine, pagination.Meta, error)
	GetByID(id uuid.UUID) (*model.Medicine, error)
	Update(id uuid.UUID, input UpdateMedicineInput, sellerID uuid.UUID) (*model.Medicine, error)
	Delete(id, sellerID uuid.UUID) error
}

type medicineService struct {
	medicineRepo repository.MedicineRepository
}

func NewMedicineService(medicineRepo repository.MedicineRepository) MedicineService {
	return &medicineService{medicineRepo: medicineRepo}
}

func (s *medicineService) Create(medicine *model.Medicine, sellerID uuid.UUID) error {
	medicine.SellerID = sellerID

	if errs := validator.ValidateStruct(medicine); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}
	if medicine.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	return s.medicineRepo.Create(medicine)
}

func (s *medicineService) List(f repository.MedicineFilter, p pagination.Params) ([]model.Medicine, pagination.Meta, error) {
	medicines, total, err := s.medicineRepo.Search(f, p)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return medicines, pagination.NewMeta(total, p), nil
}

func (s *medicineService) GetByID(id uuid.UUID) (*model.Medicine, error) {
	return s.medicineRepo.FindByID(id)
}

func (s *medicineService) Update(id uuid.UUID, input UpdateMedicineInput, sellerID uuid.UUID) (*model.Medicine, error) {
	medicine, err := s.medicineRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if medicine.SellerID != sellerID {
		return nil, ErrNotOwner
	}

	if input.Name != nil {
		medicine.Name = *input.Name
	}
	if input.Manufacturer != nil {
		medicine.Manufacturer = *input.Manufacturer
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		medicine.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must not be negative", ErrValidation)
		}
		medicine.Stock = *input.Stock
	}
	if input.CategoryID != nil {
		medicine.CategoryID = *input.CategoryID
	}

	if err := s.medicineRepo.Update(medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

func (s *medicineService) Delete(id, sellerID uuid.UUID) error {
	medicine, err := s.medicineRepo.FindByID(id)
	if err != nil {
		return err
	}
	if medicine.SellerID != sellerID {
		return ErrNotOwner
	}
	return s.medicineRepo.Delete(id)
}
