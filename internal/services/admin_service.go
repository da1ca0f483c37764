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

type AdminService struct {
	db     *gorm.DB
	orders *OrderService
}

type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,strong_password"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Role      string `json:"role" validate:"required,oneof=customer manager admin"`
}

type UpdateUserRequest struct {
	Role     string `json:"role,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type UserListParams struct {
	utils.PaginationParams
	Role     string
	IsActive *bool
}

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalUsers      int64          `json:"total_users"`
	ActiveUsers     int64          `json:"active_users"`
	TotalProducts   int64          `json:"total_products"`
	LowStockCount   int64          `json:"low_stock_count"`
	PendingReviews  int64          `json:"pending_reviews"`
	Orders          *OrderStats    `json:"orders"`
	RecentOrders    []models.Order `json:"recent_orders"`
}

// ProductAnalytics lists best sellers, most viewed, and low stock products.
type ProductAnalytics struct {
	BestSellers []models.Product `json:"best_sellers"`
	MostViewed  []models.Product `json:"most_viewed"`
	LowStock    []models.Product `json:"low_stock"`
}

// DailyRevenue is one day's revenue bucket.
type DailyRevenue struct {
	Date    string  `json:"date"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// CategoryRevenue aggregates revenue per category over delivered orders.
type CategoryRevenue struct {
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Revenue      float64   `json:"revenue"`
	UnitsSold    int64     `json:"units_sold"`
}

const lowStockThreshold = 5

func NewAdminService(db *gorm.DB, orders *OrderService) *AdminService {
	return &AdminService{db: db, orders: orders}
}

func (s *AdminService) ListUsers(params UserListParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	if params.Role != "" {
		role := models.UserRole(params.Role)
		if !role.IsValid() {
			return nil, 0, NewDomainError("invalid role: %s", params.Role)
		}
		query = query.Where("role = ?", role)
	}

	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			searchTerm, searchTerm, searchTerm,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "email", "role"})
	query = utils.ApplyPagination(query, params.PaginationParams)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

// CreateUser provisions an account with an explicit role.
func (s *AdminService) CreateUser(req *CreateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, NewConflictError("user with this email already exists")
	}

	user := &models.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      models.UserRole(req.Role),
		IsActive:  true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *AdminService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Addresses").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("User")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &user, nil
}

// UpdateUser changes a user's role or active flag. Admin accounts cannot be
// demoted or deactivated through this path.
func (s *AdminService) UpdateUser(id uuid.UUID, req *UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Role != "" {
		role := models.UserRole(req.Role)
		if !role.IsValid() {
			return nil, NewDomainError("invalid role: %s", req.Role)
		}
		if user.Role == models.RoleAdmin && role != models.RoleAdmin {
			return nil, NewDomainError("admin accounts cannot be demoted")
		}
		updates["role"] = role
	}
	if req.IsActive != nil {
		if user.Role == models.RoleAdmin && !*req.IsActive {
			return nil, NewDomainError("admin accounts cannot be deactivated")
		}
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return nil, NewDomainError("no valid fields to update")
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.GetUser(id)
}

// ToggleUserStatus flips a user's active flag. Admin accounts stay active.
func (s *AdminService) ToggleUserStatus(id uuid.UUID) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleAdmin {
		return nil, NewDomainError("admin accounts cannot be deactivated")
	}

	user.IsActive = !user.IsActive
	if err := s.db.Model(user).Update("is_active", user.IsActive).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *AdminService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.db.Model(&models.User{}).
		Where("is_active = ?", true).
		Count(&stats.ActiveUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}
	if err := s.db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&models.Product{}).
		Where("is_active = ? AND stock_quantity <= ?", true, lowStockThreshold).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count low stock products: %w", err)
	}
	if err := s.db.Model(&models.ProductReview{}).
		Where("status = ?", models.ReviewStatusPending).
		Count(&stats.PendingReviews).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending reviews: %w", err)
	}

	orderStats, err := s.orders.Stats()
	if err != nil {
		return nil, err
	}
	stats.Orders = orderStats

	if err := s.db.Order("created_at DESC").
		Limit(10).
		Preload("Items").
		Find(&stats.RecentOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}

	return stats, nil
}

func (s *AdminService) ProductAnalytics(limit int) (*ProductAnalytics, error) {
	if limit <= 0 {
		limit = 10
	}

	analytics := &ProductAnalytics{}

	if err := s.db.Where("is_active = ?", true).
		Order("sales_count DESC").
		Limit(limit).
		Find(&analytics.BestSellers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch best sellers: %w", err)
	}

	if err := s.db.Where("is_active = ?", true).
		Order("views_count DESC").
		Limit(limit).
		Find(&analytics.MostViewed).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch most viewed products: %w", err)
	}

	if err := s.db.Where("is_active = ? AND stock_quantity <= ?", true, lowStockThreshold).
		Order("stock_quantity ASC").
		Limit(limit).
		Find(&analytics.LowStock).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch low stock products: %w", err)
	}

	return analytics, nil
}

// RevenueByDay buckets revenue-bearing orders per calendar day over the
// trailing window.
func (s *AdminService) RevenueByDay(days int) ([]DailyRevenue, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	since := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -(days - 1))

	var orders []models.Order
	if err := s.db.Where("created_at >= ? AND status IN ?", since, []models.OrderStatus{
		models.OrderStatusConfirmed, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered,
	}).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	buckets := make(map[string]*DailyRevenue, days)
	for i := 0; i < days; i++ {
		date := since.AddDate(0, 0, i).Format("2006-01-02")
		buckets[date] = &DailyRevenue{Date: date}
	}
	for _, order := range orders {
		date := order.CreatedAt.UTC().Format("2006-01-02")
		if bucket, ok := buckets[date]; ok {
			bucket.Orders++
			bucket.Revenue = utils.RoundCents(bucket.Revenue + order.TotalAmount)
		}
	}

	result := make([]DailyRevenue, 0, days)
	for i := 0; i < days; i++ {
		date := since.AddDate(0, 0, i).Format("2006-01-02")
		result = append(result, *buckets[date])
	}

	return result, nil
}

func (s *AdminService) RevenueByCategory() ([]CategoryRevenue, error) {
	var rows []CategoryRevenue
	err := s.db.Model(&models.OrderItem{}).
		Select("categories.id AS category_id, categories.name AS category_name, "+
			"COALESCE(SUM(order_items.total_price), 0) AS revenue, "+
			"COALESCE(SUM(order_items.quantity), 0) AS units_sold").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("orders.status IN ?", []models.OrderStatus{
			models.OrderStatusConfirmed, models.OrderStatusProcessing,
			models.OrderStatusShipped, models.OrderStatusDelivered,
		}).
		Group("categories.id, categories.name").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category revenue: %w", err)
	}

	return rows, nil
}
