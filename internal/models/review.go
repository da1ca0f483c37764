package models

import (
	"github.com/google/uuid"
)

type ProductReview struct {
	BaseModel
	UserID             uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_user_product"`
	ProductID          uuid.UUID    `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_user_product"`
	OrderID            *uuid.UUID   `json:"order_id" gorm:"type:uuid"`
	Rating             int          `json:"rating" gorm:"not null"`
	Title              string       `json:"title" gorm:"size:200"`
	Comment            string       `json:"comment" gorm:"type:text"`
	Status             ReviewStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	IsVerifiedPurchase bool         `json:"is_verified_purchase" gorm:"default:false"`
	HelpfulCount       int          `json:"helpful_count" gorm:"default:0"`

	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}
