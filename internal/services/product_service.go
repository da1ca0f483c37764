package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/ecomdev/electronics-shop-api/internal/models"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name           string                 `json:"name" validate:"required,max=200"`
	Description    string                 `json:"description,omitempty"`
	Price          float64                `json:"price" validate:"required,gt=0"`
	SalePrice      *float64               `json:"sale_price,omitempty" validate:"omitempty,gte=0"`
	SKU            string                 `json:"sku,omitempty" validate:"omitempty,max=50"`
	StockQuantity  int                    `json:"stock_quantity" validate:"gte=0"`
	ImageURLs      []string               `json:"image_urls,omitempty"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`
	Brand          string                 `json:"brand,omitempty" validate:"omitempty,max=100"`
	Model          string                 `json:"model,omitempty" validate:"omitempty,max=100"`
	WarrantyMonths int                    `json:"warranty_months,omitempty" validate:"omitempty,gte=0"`
	IsFeatured     bool                   `json:"is_featured,omitempty"`
	CategoryID     uuid.UUID              `json:"category_id" validate:"required"`
}

type UpdateProductRequest struct {
	Name           string                 `json:"name,omitempty" validate:"omitempty,max=200"`
	Description    *string                `json:"description,omitempty"`
	Price          *float64               `json:"price,omitempty" validate:"omitempty,gt=0"`
	SalePrice      *float64               `json:"sale_price,omitempty" validate:"omitempty,gte=0"`
	StockQuantity  *int                   `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	ImageURLs      []string               `json:"image_urls,omitempty"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`
	Brand          string                 `json:"brand,omitempty" validate:"omitempty,max=100"`
	Model          string                 `json:"model,omitempty" validate:"omitempty,max=100"`
	WarrantyMonths *int                   `json:"warranty_months,omitempty" validate:"omitempty,gte=0"`
	IsFeatured     *bool                  `json:"is_featured,omitempty"`
	CategoryID     *uuid.UUID             `json:"category_id,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	CategoryID *uuid.UUID
	Brand      string
	PriceMin   *float64
	PriceMax   *float64
	InStock    bool
	Featured   bool
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// Search lists active products with filtering, free-text search across
// name/description/brand/model, allow-listed sorting and pagination.
func (s *ProductService) Search(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Preload("Category")

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.Brand != "" {
		query = query.Where("brand = ?", params.Brand)
	}

	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}

	if params.InStock {
		query = query.Where("stock_quantity > 0")
	}

	if params.Featured {
		query = query.Where("is_featured = ?", true)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(model) LIKE ?",
			searchTerm, searchTerm, searchTerm, searchTerm,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "sales_count", "views_count"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// Get returns an active product and increments its view counter.
func (s *ProductService) Get(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").
		Where("id = ? AND is_active = ?", id, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	product.ViewsCount++

	return &product, nil
}

func (s *ProductService) GetFeatured(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("is_featured = ? AND is_active = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Preload("Category").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch featured products: %w", err)
	}

	return products, nil
}

func (s *ProductService) Create(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Category")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	sku := req.SKU
	if sku == "" {
		sku = utils.GenerateSKU()
	} else {
		var existing models.Product
		if err := s.db.Unscoped().Where("sku = ?", sku).First(&existing).Error; err == nil {
			return nil, NewConflictError("SKU already exists")
		}
	}

	warranty := req.WarrantyMonths
	if warranty == 0 {
		warranty = 12
	}

	product := &models.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		SalePrice:      req.SalePrice,
		SKU:            sku,
		StockQuantity:  req.StockQuantity,
		ImageURLs:      pq.StringArray(req.ImageURLs),
		Specifications: models.JSONB(req.Specifications),
		Brand:          req.Brand,
		Model:          req.Model,
		WarrantyMonths: warranty,
		IsActive:       true,
		IsFeatured:     req.IsFeatured,
		CategoryID:     req.CategoryID,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.db.Preload("Category").First(product, "id = ?", product.ID)

	return product, nil
}

func (s *ProductService) Update(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.SalePrice != nil {
		updates["sale_price"] = *req.SalePrice
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.ImageURLs != nil {
		updates["image_urls"] = pq.StringArray(req.ImageURLs)
	}
	if req.Specifications != nil {
		updates["specifications"] = models.JSONB(req.Specifications)
	}
	if req.Brand != "" {
		updates["brand"] = req.Brand
	}
	if req.Model != "" {
		updates["model"] = req.Model
	}
	if req.WarrantyMonths != nil {
		updates["warranty_months"] = *req.WarrantyMonths
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, "id = ?", *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewNotFoundError("Category")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		updates["category_id"] = *req.CategoryID
	}

	if len(updates) == 0 {
		return nil, NewDomainError("no valid fields to update")
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.db.Preload("Category").First(&product, "id = ?", id)

	return &product, nil
}

// Delete soft-deletes a product by deactivating it.
func (s *ProductService) Delete(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("Product")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&product).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// AppendImages adds uploaded image URLs to a product.
func (s *ProductService) AppendImages(id uuid.UUID, urls []string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	product.ImageURLs = append(product.ImageURLs, urls...)
	if err := s.db.Model(&product).Update("image_urls", product.ImageURLs).Error; err != nil {
		return nil, fmt.Errorf("failed to update product images: %w", err)
	}

	return &product, nil
}
