package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecomdev/electronics-shop-api/internal/models"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type CouponService struct {
	db *gorm.DB
}

type CreateCouponRequest struct {
	Code                  string    `json:"code" validate:"required,max=50"`
	Name                  string    `json:"name" validate:"required,max=100"`
	Description           string    `json:"description,omitempty"`
	DiscountType          string    `json:"discount_type" validate:"required,oneof=percentage fixed_amount"`
	DiscountValue         float64   `json:"discount_value" validate:"required,gt=0"`
	MinimumOrderAmount    float64   `json:"minimum_order_amount,omitempty" validate:"omitempty,gte=0"`
	MaximumDiscountAmount *float64  `json:"maximum_discount_amount,omitempty" validate:"omitempty,gt=0"`
	UsageLimit            *int      `json:"usage_limit,omitempty" validate:"omitempty,gt=0"`
	UsageLimitPerUser     int       `json:"usage_limit_per_user,omitempty" validate:"omitempty,gt=0"`
	ValidFrom             time.Time `json:"valid_from" validate:"required"`
	ValidUntil            time.Time `json:"valid_until" validate:"required"`
}

type UpdateCouponRequest struct {
	Name                  string     `json:"name,omitempty" validate:"omitempty,max=100"`
	Description           *string    `json:"description,omitempty"`
	DiscountValue         *float64   `json:"discount_value,omitempty" validate:"omitempty,gt=0"`
	MinimumOrderAmount    *float64   `json:"minimum_order_amount,omitempty" validate:"omitempty,gte=0"`
	MaximumDiscountAmount *float64   `json:"maximum_discount_amount,omitempty" validate:"omitempty,gt=0"`
	UsageLimit            *int       `json:"usage_limit,omitempty" validate:"omitempty,gt=0"`
	Status                string     `json:"status,omitempty"`
	ValidFrom             *time.Time `json:"valid_from,omitempty"`
	ValidUntil            *time.Time `json:"valid_until,omitempty"`
}

// CouponValidation is the preview result returned before checkout.
type CouponValidation struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalAmount    float64 `json:"final_amount"`
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{db: db}
}

// resolveForUser fetches a coupon by code and checks validity, the order
// minimum, and the caller's per-user usage limit.
func (s *CouponService) resolveForUser(tx *gorm.DB, code string, userID uuid.UUID, orderAmount float64) (*models.Coupon, float64, error) {
	var coupon models.Coupon
	if err := tx.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, NewNotFoundError("Coupon")
		}
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	if !coupon.IsValid() {
		return nil, 0, NewDomainError("coupon is not valid or has expired")
	}

	if orderAmount < coupon.MinimumOrderAmount {
		return nil, 0, NewDomainError("order must be at least %.2f to use this coupon", coupon.MinimumOrderAmount)
	}

	var userUsage int64
	if err := tx.Model(&models.CouponUsage{}).
		Where("coupon_id = ? AND user_id = ?", coupon.ID, userID).
		Count(&userUsage).Error; err != nil {
		return nil, 0, fmt.Errorf("database error: %w", err)
	}
	if userUsage >= int64(coupon.UsageLimitPerUser) {
		return nil, 0, NewDomainError("coupon usage limit reached for this account")
	}

	discount := coupon.CalculateDiscount(orderAmount)
	if discount <= 0 {
		return nil, 0, NewDomainError("coupon does not apply to this order")
	}

	return &coupon, discount, nil
}

// Validate previews the discount a coupon would give on an order amount.
func (s *CouponService) Validate(userID uuid.UUID, code string, orderAmount float64) (*CouponValidation, error) {
	if orderAmount <= 0 {
		return nil, NewDomainError("order amount must be positive")
	}

	coupon, discount, err := s.resolveForUser(s.db, code, userID, orderAmount)
	if err != nil {
		return nil, err
	}

	return &CouponValidation{
		Code:           coupon.Code,
		DiscountAmount: discount,
		FinalAmount:    utils.RoundCents(orderAmount - discount),
	}, nil
}

func (s *CouponService) List(params utils.PaginationParams) ([]models.Coupon, int64, error) {
	query := s.db.Model(&models.Coupon{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "code", "valid_until", "used_count"})
	query = utils.ApplyPagination(query, params)

	var coupons []models.Coupon
	if err := query.Find(&coupons).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch coupons: %w", err)
	}

	return coupons, total, nil
}

func (s *CouponService) Get(id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := s.db.First(&coupon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Coupon")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &coupon, nil
}

func (s *CouponService) Create(req *CreateCouponRequest) (*models.Coupon, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if !req.ValidUntil.After(req.ValidFrom) {
		return nil, NewDomainError("valid_until must be after valid_from")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var existing models.Coupon
	if err := s.db.Unscoped().Where("code = ?", code).First(&existing).Error; err == nil {
		return nil, NewConflictError("coupon code already exists")
	}

	perUser := req.UsageLimitPerUser
	if perUser == 0 {
		perUser = 1
	}

	coupon := &models.Coupon{
		Code:                  code,
		Name:                  req.Name,
		Description:           req.Description,
		DiscountType:          models.DiscountType(req.DiscountType),
		DiscountValue:         req.DiscountValue,
		MinimumOrderAmount:    req.MinimumOrderAmount,
		MaximumDiscountAmount: req.MaximumDiscountAmount,
		UsageLimit:            req.UsageLimit,
		UsageLimitPerUser:     perUser,
		Status:                models.CouponStatusActive,
		ValidFrom:             req.ValidFrom,
		ValidUntil:            req.ValidUntil,
	}

	if err := s.db.Create(coupon).Error; err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	return coupon, nil
}

func (s *CouponService) Update(id uuid.UUID, req *UpdateCouponRequest) (*models.Coupon, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	coupon, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DiscountValue != nil {
		updates["discount_value"] = *req.DiscountValue
	}
	if req.MinimumOrderAmount != nil {
		updates["minimum_order_amount"] = *req.MinimumOrderAmount
	}
	if req.MaximumDiscountAmount != nil {
		updates["maximum_discount_amount"] = *req.MaximumDiscountAmount
	}
	if req.UsageLimit != nil {
		updates["usage_limit"] = *req.UsageLimit
	}
	if req.Status != "" {
		status := models.CouponStatus(req.Status)
		if !status.IsValid() {
			return nil, NewDomainError("invalid coupon status: %s", req.Status)
		}
		updates["status"] = status
	}
	if req.ValidFrom != nil {
		updates["valid_from"] = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		updates["valid_until"] = *req.ValidUntil
	}

	if len(updates) == 0 {
		return nil, NewDomainError("no valid fields to update")
	}

	if err := s.db.Model(coupon).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	return s.Get(id)
}

func (s *CouponService) Delete(id uuid.UUID) error {
	coupon, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(coupon).Error; err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	return nil
}
