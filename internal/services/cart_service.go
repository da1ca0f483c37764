package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecomdev/electronics-shop-api/internal/models"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type CartService struct {
	db *gorm.DB
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// CartSummary is the aggregate view of a user's cart.
type CartSummary struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	Subtotal   float64           `json:"subtotal"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

func (s *CartService) GetCart(userID uuid.UUID) (*CartSummary, error) {
	var items []models.CartItem
	if err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Preload("Product.Category").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	summary := &CartSummary{Items: items}
	for _, item := range items {
		summary.TotalItems += item.Quantity
		summary.Subtotal += item.TotalPrice()
	}
	summary.Subtotal = utils.RoundCents(summary.Subtotal)

	return summary, nil
}

// AddItem adds a product to the cart. If the product is already present the
// quantities are merged, and the combined quantity is validated against stock.
func (s *CartService) AddItem(userID uuid.UUID, req *AddToCartRequest) (*models.CartItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.Where("id = ? AND is_active = ?", req.ProductID, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var item models.CartItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).
		First(&item).Error

	switch {
	case err == nil:
		newQuantity := item.Quantity + req.Quantity
		if newQuantity > product.StockQuantity {
			return nil, NewDomainError("insufficient stock: only %d available", product.StockQuantity)
		}
		if err := s.db.Model(&item).Update("quantity", newQuantity).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if req.Quantity > product.StockQuantity {
			return nil, NewDomainError("insufficient stock: only %d available", product.StockQuantity)
		}
		item = models.CartItem{
			UserID:    userID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.db.Preload("Product").First(&item, "id = ?", item.ID)

	return &item, nil
}

func (s *CartService) UpdateItem(userID, itemID uuid.UUID, req *UpdateCartItemRequest) (*models.CartItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var item models.CartItem
	if err := s.db.Where("id = ? AND user_id = ?", itemID, userID).
		Preload("Product").
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Cart item")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.Quantity > item.Product.StockQuantity {
		return nil, NewDomainError("insufficient stock: only %d available", item.Product.StockQuantity)
	}

	if err := s.db.Model(&item).Update("quantity", req.Quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	item.Quantity = req.Quantity

	return &item, nil
}

func (s *CartService) RemoveItem(userID, itemID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("Cart item")
	}

	return nil
}

func (s *CartService) ClearCart(userID uuid.UUID) error {
	if err := s.db.Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

// Count returns the total quantity of items in the user's cart.
func (s *CartService) Count(userID uuid.UUID) (int, error) {
	var count *int
	if err := s.db.Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	if count == nil {
		return 0, nil
	}

	return *count, nil
}
