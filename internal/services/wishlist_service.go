package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecomdev/electronics-shop-api/internal/models"
)

type WishlistService struct {
	db *gorm.DB
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

func (s *WishlistService) List(userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Preload("Product.Category").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch wishlist: %w", err)
	}

	return items, nil
}

func (s *WishlistService) Add(userID, productID uuid.UUID) (*models.WishlistItem, error) {
	var product models.Product
	if err := s.db.Where("id = ? AND is_active = ?", productID, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var existing models.WishlistItem
	if err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing).Error; err == nil {
		return nil, NewConflictError("product is already in wishlist")
	}

	item := &models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	item.Product = product

	return item, nil
}

func (s *WishlistService) Remove(userID, productID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("Wishlist item")
	}

	return nil
}
