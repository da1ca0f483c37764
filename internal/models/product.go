package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name           string         `json:"name" gorm:"size:200;not null"`
	Description    string         `json:"description" gorm:"type:text"`
	Price          float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	SalePrice      *float64       `json:"sale_price" gorm:"type:decimal(10,2)"`
	SKU            string         `json:"sku" gorm:"uniqueIndex;size:50;not null"`
	StockQuantity  int            `json:"stock_quantity" gorm:"not null;default:0"`
	ImageURLs      pq.StringArray `json:"image_urls" gorm:"type:text[]"`
	Specifications JSONB          `json:"specifications" gorm:"type:jsonb"`
	Brand          string         `json:"brand" gorm:"size:100;index"`
	Model          string         `json:"model" gorm:"size:100"`
	WarrantyMonths int            `json:"warranty_months" gorm:"default:12"`
	IsActive       bool           `json:"is_active" gorm:"default:true;index"`
	IsFeatured     bool           `json:"is_featured" gorm:"default:false"`
	ViewsCount     int64          `json:"views_count" gorm:"default:0"`
	SalesCount     int64          `json:"sales_count" gorm:"default:0"`
	CategoryID     uuid.UUID      `json:"category_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Category   Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CartItems  []CartItem  `json:"-" gorm:"foreignKey:ProductID"`
	OrderItems []OrderItem `json:"-" gorm:"foreignKey:ProductID"`
}

// CurrentPrice is the sale price when one is set, the list price otherwise.
func (p *Product) CurrentPrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// Snapshot freezes the product details for storage on an order item, so
// historical orders are immune to later product edits.
func (p *Product) Snapshot() JSONB {
	return JSONB{
		"id":            p.ID.String(),
		"name":          p.Name,
		"sku":           p.SKU,
		"brand":         p.Brand,
		"model":         p.Model,
		"price":         p.Price,
		"sale_price":    p.SalePrice,
		"current_price": p.CurrentPrice(),
		"category_id":   p.CategoryID.String(),
	}
}
