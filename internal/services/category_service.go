package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecomdev/electronics-shop-api/internal/models"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,max=255"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// ListActive returns all active categories ordered by name, each with its
// active product count.
func (s *CategoryService) ListActive() ([]models.Category, map[uuid.UUID]int64, error) {
	var categories []models.Category
	if err := s.db.Where("is_active = ?", true).Order("name").Find(&categories).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	counts := make(map[uuid.UUID]int64, len(categories))
	for _, category := range categories {
		var count int64
		s.db.Model(&models.Product{}).
			Where("category_id = ? AND is_active = ?", category.ID, true).
			Count(&count)
		counts[category.ID] = count
	}

	return categories, counts, nil
}

func (s *CategoryService) Get(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND is_active = ?", id, true).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Category")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) Create(req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var existing models.Category
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, NewConflictError("category with this name already exists")
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) Update(id uuid.UUID, req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Category")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.Name != category.Name {
		var existing models.Category
		if err := s.db.Where("name = ? AND id <> ?", req.Name, id).First(&existing).Error; err == nil {
			return nil, NewConflictError("category with this name already exists")
		}
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"image_url":   req.ImageURL,
	}

	if err := s.db.Model(&category).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &category, nil
}

// Delete soft-deletes a category by deactivating it. Categories that still
// have active products cannot be deleted.
func (s *CategoryService) Delete(id uuid.UUID) error {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Category")
		}
		return fmt.Errorf("database error: %w", err)
	}

	var activeProducts int64
	if err := s.db.Model(&models.Product{}).
		Where("category_id = ? AND is_active = ?", id, true).
		Count(&activeProducts).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	if activeProducts > 0 {
		return NewDomainError(
			"cannot delete category with %d active products. Please move or deactivate products first",
			activeProducts,
		)
	}

	if err := s.db.Model(&category).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}

func (s *CategoryService) ToggleStatus(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Category")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	category.IsActive = !category.IsActive
	if err := s.db.Model(&category).Update("is_active", category.IsActive).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle category status: %w", err)
	}

	return &category, nil
}
