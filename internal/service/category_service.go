package service

import (
	"errors"

	"go-medistore/internal/model"
	"go-medistore/internal/repository"
	"go-medistore/pkg/pagination"

	"github.com/google/uuid"
)

var ErrDuplicateCategory = errors.New("category with this name already exists")

type CategoryService interface {
	Create(name string) (*model.Category, error)
	List(p pagination.Params) ([]model.Category, pagination.Meta, error)
	GetByID(id uuid.UUID) (*model.Category, error)
	Update(id uuid.UUID, name string) (*model.Category, error)
	Delete(id uuid.UUID) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(name string) (*model.Category, error) {
	// Unique-name business rule, checked ahead of the DB constraint
	if existing, err := s.categoryRepo.FindByName(name); err == nil && existing != nil {
		return nil, ErrDuplicateCategory
	}

	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) List(p pagination.Params) ([]model.Category, pagination.Meta, error) {
	categories, total, err := s.categoryRepo.FindAll(p)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return categories, pagination.NewMeta(total, p), nil
}

func (s *categoryService) GetByID(id uuid.UUID) (*model.Category, error) {
	return s.categoryRepo.FindByID(id)
}

func (s *categoryService) Update(id uuid.UUID, name string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(id)
}
