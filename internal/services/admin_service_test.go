package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/ecomdev/electronics-shop-api/internal/models"
)

type AdminServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AdminService
	orders  *OrderService
}

func (suite *AdminServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	cfg := newTestConfig()
	suite.orders = NewOrderService(suite.db, cfg, NewPaymentService(cfg), NewCouponService(suite.db))
	suite.service = NewAdminService(suite.db, suite.orders)
}

func (suite *AdminServiceTestSuite) placeOrder(user *models.User, product *models.Product, qty int) *models.Order {
	address := createTestAddress(suite.T(), suite.db, user.ID)
	addToCart(suite.T(), suite.db, user.ID, product.ID, qty)

	order, err := suite.orders.Checkout(user.ID, &CheckoutRequest{
		ShippingAddressID: &address.ID,
		PaymentMethod:     "cod",
	})
	require.NoError(suite.T(), err)
	return order
}

func (suite *AdminServiceTestSuite) TestListUsersFiltersByRole() {
	createTestUser(suite.T(), suite.db, "a@example.com")
	manager := createTestUser(suite.T(), suite.db, "b@example.com")
	suite.db.Model(manager).Update("role", models.RoleManager)

	users, total, err := suite.service.ListUsers(UserListParams{Role: "manager"})
	require.NoError(suite.T(), err)
	suite.Equal(int64(1), total)
	require.Len(suite.T(), users, 1)
	suite.Equal("b@example.com", users[0].Email)

	_, _, err = suite.service.ListUsers(UserListParams{Role: "wizard"})
	suite.Error(err)
	suite.IsType(&DomainError{}, err)
}

func (suite *AdminServiceTestSuite) TestUpdateUserPromotesAndDeactivates() {
	user := createTestUser(suite.T(), suite.db, "a@example.com")

	updated, err := suite.service.UpdateUser(user.ID, &UpdateUserRequest{Role: "manager"})
	require.NoError(suite.T(), err)
	suite.Equal(models.RoleManager, updated.Role)

	inactive := false
	updated, err = suite.service.UpdateUser(user.ID, &UpdateUserRequest{IsActive: &inactive})
	require.NoError(suite.T(), err)
	suite.False(updated.IsActive)
}

func (suite *AdminServiceTestSuite) TestCreateUserRejectsDuplicateEmail() {
	createTestUser(suite.T(), suite.db, "a@example.com")

	req := &CreateUserRequest{
		Email:     "a@example.com",
		Password:  "Str0ngPass!",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      "manager",
	}
	_, err := suite.service.CreateUser(req)
	suite.Error(err)
	suite.IsType(&ConflictError{}, err)

	req.Email = "b@example.com"
	user, err := suite.service.CreateUser(req)
	require.NoError(suite.T(), err)
	suite.Equal(models.RoleManager, user.Role)
	suite.True(user.IsActive)
	suite.NoError(user.CheckPassword("Str0ngPass!"))
}

func (suite *AdminServiceTestSuite) TestToggleUserStatus() {
	user := createTestUser(suite.T(), suite.db, "a@example.com")

	toggled, err := suite.service.ToggleUserStatus(user.ID)
	require.NoError(suite.T(), err)
	suite.False(toggled.IsActive)

	var stored models.User
	require.NoError(suite.T(), suite.db.First(&stored, "id = ?", user.ID).Error)
	suite.Equal(stored.IsActive, toggled.IsActive)

	toggled, err = suite.service.ToggleUserStatus(user.ID)
	require.NoError(suite.T(), err)
	suite.True(toggled.IsActive)

	admin := createTestUser(suite.T(), suite.db, "root@example.com")
	suite.db.Model(admin).Update("role", models.RoleAdmin)
	_, err = suite.service.ToggleUserStatus(admin.ID)
	suite.Error(err)
	suite.IsType(&DomainError{}, err)
}

func (suite *AdminServiceTestSuite) TestUpdateUserProtectsAdmins() {
	admin := createTestUser(suite.T(), suite.db, "root@example.com")
	suite.db.Model(admin).Update("role", models.RoleAdmin)

	_, err := suite.service.UpdateUser(admin.ID, &UpdateUserRequest{Role: "customer"})
	suite.Error(err)
	suite.IsType(&DomainError{}, err)

	inactive := false
	_, err = suite.service.UpdateUser(admin.ID, &UpdateUserRequest{IsActive: &inactive})
	suite.Error(err)
	suite.IsType(&DomainError{}, err)
}

func (suite *AdminServiceTestSuite) TestDashboardCountsAndRevenue() {
	user := createTestUser(suite.T(), suite.db, "buyer@example.com")
	category := createTestCategory(suite.T(), suite.db, "Drones")
	product := createTestProduct(suite.T(), suite.db, category.ID, "Drone", 50, 10)

	order := suite.placeOrder(user, product, 2)
	_, err := suite.orders.UpdateStatus(order.ID, &UpdateOrderStatusRequest{Status: "confirmed"})
	require.NoError(suite.T(), err)

	stats, err := suite.service.Dashboard()
	require.NoError(suite.T(), err)
	suite.Equal(int64(1), stats.TotalUsers)
	suite.Equal(int64(1), stats.TotalProducts)
	suite.Equal(int64(1), stats.Orders.TotalOrders)
	suite.Equal(order.TotalAmount, stats.Orders.TotalRevenue)
	suite.Len(stats.RecentOrders, 1)
}

func (suite *AdminServiceTestSuite) TestProductAnalytics() {
	user := createTestUser(suite.T(), suite.db, "buyer@example.com")
	category := createTestCategory(suite.T(), suite.db, "Drones")
	seller := createTestProduct(suite.T(), suite.db, category.ID, "Popular", 20, 50)
	createTestProduct(suite.T(), suite.db, category.ID, "Scarce", 30, 2)

	suite.placeOrder(user, seller, 5)

	analytics, err := suite.service.ProductAnalytics(10)
	require.NoError(suite.T(), err)
	require.NotEmpty(suite.T(), analytics.BestSellers)
	suite.Equal("Popular", analytics.BestSellers[0].Name)
	require.Len(suite.T(), analytics.LowStock, 1)
	suite.Equal("Scarce", analytics.LowStock[0].Name)
}

func (suite *AdminServiceTestSuite) TestRevenueByDayAndCategory() {
	user := createTestUser(suite.T(), suite.db, "buyer@example.com")
	category := createTestCategory(suite.T(), suite.db, "Drones")
	product := createTestProduct(suite.T(), suite.db, category.ID, "Drone", 50, 10)

	order := suite.placeOrder(user, product, 2)
	_, err := suite.orders.UpdateStatus(order.ID, &UpdateOrderStatusRequest{Status: "confirmed"})
	require.NoError(suite.T(), err)

	daily, err := suite.service.RevenueByDay(7)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), daily, 7)

	today := daily[len(daily)-1]
	suite.Equal(int64(1), today.Orders)
	suite.Equal(order.TotalAmount, today.Revenue)

	byCategory, err := suite.service.RevenueByCategory()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), byCategory, 1)
	suite.Equal("Drones", byCategory[0].CategoryName)
	suite.Equal(int64(2), byCategory[0].UnitsSold)
	suite.Equal(100.0, byCategory[0].Revenue)
}

func TestAdminServiceSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
