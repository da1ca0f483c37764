package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ecomdev/electronics-shop-api/internal/config"
	"github.com/ecomdev/electronics-shop-api/internal/database"
	"github.com/ecomdev/electronics-shop-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 720,
		},
		Order: config.OrderConfig{
			TaxRate:               0.08,
			FlatShippingFee:       10.00,
			FreeShippingThreshold: 100.00,
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      models.RoleCustomer,
		IsActive:  true,
	}
	require.NoError(t, user.SetPassword("Password123"))
	require.NoError(t, db.Create(user).Error)

	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:     name,
		IsActive: true,
	}
	require.NoError(t, db.Create(category).Error)

	return category
}

func createTestProduct(t *testing.T, db *gorm.DB, categoryID uuid.UUID, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:          name,
		Price:         price,
		SKU:           fmt.Sprintf("SKU-%s", uuid.NewString()[:8]),
		StockQuantity: stock,
		IsActive:      true,
		CategoryID:    categoryID,
	}
	require.NoError(t, db.Create(product).Error)

	return product
}

func createTestAddress(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.Address {
	t.Helper()

	address := &models.Address{
		UserID:       userID,
		Type:         models.AddressTypeShipping,
		FirstName:    "Test",
		LastName:     "User",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "IL",
		PostalCode:   "62701",
		Country:      "US",
		IsDefault:    true,
	}
	require.NoError(t, db.Create(address).Error)

	return address
}

func createTestCoupon(t *testing.T, db *gorm.DB, code string, discountType models.DiscountType, value float64) *models.Coupon {
	t.Helper()

	coupon := &models.Coupon{
		Code:              code,
		Name:              "Test Coupon",
		DiscountType:      discountType,
		DiscountValue:     value,
		UsageLimitPerUser: 1,
		Status:            models.CouponStatusActive,
		ValidFrom:         time.Now().Add(-time.Hour),
		ValidUntil:        time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(coupon).Error)

	return coupon
}

func createTestOrderID(t *testing.T, db *gorm.DB, userID uuid.UUID) uuid.UUID {
	t.Helper()

	order := &models.Order{
		OrderNumber:   fmt.Sprintf("ORD-TEST-%s", uuid.NewString()[:8]),
		UserID:        userID,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Subtotal:      100,
		TotalAmount:   100,
		Currency:      "USD",
	}
	require.NoError(t, db.Create(order).Error)

	return order.ID
}

func addToCart(t *testing.T, db *gorm.DB, userID, productID uuid.UUID, quantity int) {
	t.Helper()

	require.NoError(t, db.Create(&models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}).Error)
}
