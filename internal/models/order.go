package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	OrderNumber    string        `json:"order_number" gorm:"uniqueIndex;size:50;not null"`
	UserID         uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	CouponID       *uuid.UUID    `json:"coupon_id" gorm:"type:uuid"`
	CouponDiscount float64       `json:"coupon_discount" gorm:"type:decimal(10,2);default:0"`
	Status         OrderStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentStatus  PaymentStatus `json:"payment_status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Subtotal       float64       `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	TaxAmount      float64       `json:"tax_amount" gorm:"type:decimal(10,2);default:0"`
	ShippingAmount float64       `json:"shipping_amount" gorm:"type:decimal(10,2);default:0"`
	TotalAmount    float64       `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Currency       string        `json:"currency" gorm:"size:3;default:'USD'"`
	ShippingAddr   JSONB         `json:"shipping_address" gorm:"column:shipping_address;type:jsonb"`
	BillingAddr    JSONB         `json:"billing_address" gorm:"column:billing_address;type:jsonb"`
	PaymentMethod  string        `json:"payment_method" gorm:"size:50"`
	PaymentRef     string        `json:"payment_reference" gorm:"column:payment_reference;size:100"`
	Notes          string        `json:"notes" gorm:"type:text"`
	ShippedAt      *time.Time    `json:"shipped_at"`
	DeliveredAt    *time.Time    `json:"delivered_at"`

	// Relationships
	User   User        `json:"-" gorm:"foreignKey:UserID"`
	Coupon *Coupon     `json:"coupon,omitempty" gorm:"foreignKey:CouponID"`
	Items  []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	BaseModel
	OrderID         uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity        int       `json:"quantity" gorm:"not null"`
	UnitPrice       float64   `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	TotalPrice      float64   `json:"total_price" gorm:"type:decimal(10,2);not null"`
	ProductSnapshot JSONB     `json:"product_snapshot" gorm:"type:jsonb"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
