package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecomdev/electronics-shop-api/internal/models"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type ReviewService struct {
	db *gorm.DB
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title,omitempty" validate:"omitempty,max=200"`
	Comment string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

type ModerateReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// ReviewSummary aggregates approved review stats for a product.
type ReviewSummary struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// ListForProduct returns approved reviews for a product, newest first.
func (s *ReviewService) ListForProduct(productID uuid.UUID, params utils.PaginationParams) ([]models.ProductReview, int64, *ReviewSummary, error) {
	var product models.Product
	if err := s.db.Where("id = ? AND is_active = ?", productID, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, nil, NewNotFoundError("Product")
		}
		return nil, 0, nil, fmt.Errorf("database error: %w", err)
	}

	query := s.db.Model(&models.ProductReview{}).
		Where("product_id = ? AND status = ?", productID, models.ReviewStatusApproved)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "rating", "helpful_count"})
	query = utils.ApplyPagination(query, params)

	var reviews []models.ProductReview
	if err := query.Preload("User").Find(&reviews).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	summary := &ReviewSummary{ReviewCount: total}
	if total > 0 {
		var avg *float64
		if err := s.db.Model(&models.ProductReview{}).
			Where("product_id = ? AND status = ?", productID, models.ReviewStatusApproved).
			Select("AVG(rating)").
			Scan(&avg).Error; err != nil {
			return nil, 0, nil, fmt.Errorf("failed to average ratings: %w", err)
		}
		if avg != nil {
			summary.AverageRating = utils.RoundCents(*avg)
		}
	}

	return reviews, total, summary, nil
}

// Create adds a review for a product. Each user reviews a product once;
// reviews from users with a delivered order containing the product are
// marked as verified purchases.
func (s *ReviewService) Create(userID, productID uuid.UUID, req *CreateReviewRequest) (*models.ProductReview, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.Where("id = ? AND is_active = ?", productID, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var existing models.ProductReview
	if err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing).Error; err == nil {
		return nil, NewConflictError("you have already reviewed this product")
	}

	review := &models.ProductReview{
		UserID:    userID,
		ProductID: productID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
		Status:    models.ReviewStatusPending,
	}

	var orderItem models.OrderItem
	err := s.db.Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ? AND orders.status = ?",
			userID, productID, models.OrderStatusDelivered).
		First(&orderItem).Error
	if err == nil {
		review.OrderID = &orderItem.OrderID
		review.IsVerifiedPurchase = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}

// Update edits the caller's own review. Edited reviews go back through
// moderation.
func (s *ReviewService) Update(reviewID, userID uuid.UUID, req *CreateReviewRequest) (*models.ProductReview, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var review models.ProductReview
	if err := s.db.Where("id = ? AND user_id = ?", reviewID, userID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Review")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"rating":  req.Rating,
		"title":   req.Title,
		"comment": req.Comment,
		"status":  models.ReviewStatusPending,
	}
	if err := s.db.Model(&review).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	review.Rating = req.Rating
	review.Title = req.Title
	review.Comment = req.Comment
	review.Status = models.ReviewStatusPending

	return &review, nil
}

// ListPending returns reviews awaiting moderation.
func (s *ReviewService) ListPending(params utils.PaginationParams) ([]models.ProductReview, int64, error) {
	query := s.db.Model(&models.ProductReview{}).
		Where("status = ?", models.ReviewStatusPending)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "rating"})
	query = utils.ApplyPagination(query, params)

	var reviews []models.ProductReview
	if err := query.Preload("User").Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	return reviews, total, nil
}

func (s *ReviewService) Moderate(reviewID uuid.UUID, req *ModerateReviewRequest) (*models.ProductReview, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var review models.ProductReview
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Review")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	status := models.ReviewStatus(req.Status)
	if err := s.db.Model(&review).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to moderate review: %w", err)
	}
	review.Status = status

	return &review, nil
}

func (s *ReviewService) Delete(reviewID, userID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", reviewID, userID).
		Delete(&models.ProductReview{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("Review")
	}

	return nil
}
