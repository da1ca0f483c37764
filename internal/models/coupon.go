package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Coupon struct {
	BaseModel
	Code                  string       `json:"code" gorm:"uniqueIndex;size:50;not null"`
	Name                  string       `json:"name" gorm:"size:200;not null"`
	Description           string       `json:"description" gorm:"type:text"`
	DiscountType          DiscountType `json:"discount_type" gorm:"type:varchar(20);not null"`
	DiscountValue         float64      `json:"discount_value" gorm:"type:decimal(10,2);not null"`
	MinimumOrderAmount    float64      `json:"minimum_order_amount" gorm:"type:decimal(10,2);default:0"`
	MaximumDiscountAmount *float64     `json:"maximum_discount_amount" gorm:"type:decimal(10,2)"`
	UsageLimit            *int         `json:"usage_limit"`
	UsageLimitPerUser     int          `json:"usage_limit_per_user" gorm:"default:1"`
	UsedCount             int          `json:"used_count" gorm:"default:0"`
	Status                CouponStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	ValidFrom             time.Time    `json:"valid_from" gorm:"not null"`
	ValidUntil            time.Time    `json:"valid_until" gorm:"not null"`
}

// IsValid reports whether the coupon is active, within its validity window,
// and under its global usage limit.
func (c *Coupon) IsValid() bool {
	now := time.Now().UTC()
	if c.Status != CouponStatusActive {
		return false
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return false
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false
	}
	return true
}

// CalculateDiscount returns the discount for the given order amount: zero when
// the coupon is invalid or the amount is under the minimum, otherwise the
// percentage or flat value capped by MaximumDiscountAmount and by the order
// amount itself.
func (c *Coupon) CalculateDiscount(orderAmount float64) float64 {
	if !c.IsValid() || orderAmount < c.MinimumOrderAmount {
		return 0
	}

	var discount float64
	if c.DiscountType == DiscountTypePercentage {
		discount = orderAmount * (c.DiscountValue / 100)
	} else {
		discount = c.DiscountValue
	}

	if c.MaximumDiscountAmount != nil && discount > *c.MaximumDiscountAmount {
		discount = *c.MaximumDiscountAmount
	}

	return math.Round(math.Min(discount, orderAmount)*100) / 100
}

// CouponUsage records one application of a coupon to an order and enforces the
// per-user usage limit.
type CouponUsage struct {
	BaseModel
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_usage_user_coupon_order"`
	CouponID       uuid.UUID `json:"coupon_id" gorm:"type:uuid;not null;uniqueIndex:idx_usage_user_coupon_order"`
	OrderID        uuid.UUID `json:"order_id" gorm:"type:uuid;not null;uniqueIndex:idx_usage_user_coupon_order"`
	DiscountAmount float64   `json:"discount_amount" gorm:"type:decimal(10,2);not null"`
	UsedAt         time.Time `json:"used_at"`

	Coupon Coupon `json:"coupon,omitempty" gorm:"foreignKey:CouponID"`
}
