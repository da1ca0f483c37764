package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/ecomdev/electronics-shop-api/internal/models"
)

type CartServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CartService
	user    *models.User
	product *models.Product
}

func (suite *CartServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewCartService(suite.db)

	suite.user = createTestUser(suite.T(), suite.db, "shopper@example.com")
	category := createTestCategory(suite.T(), suite.db, "Phones")
	suite.product = createTestProduct(suite.T(), suite.db, category.ID, "Phone", 25.50, 5)
}

func (suite *CartServiceTestSuite) TestAddItem() {
	item, err := suite.service.AddItem(suite.user.ID, &AddToCartRequest{
		ProductID: suite.product.ID,
		Quantity:  2,
	})
	require.NoError(suite.T(), err)
	suite.Equal(2, item.Quantity)
}

func (suite *CartServiceTestSuite) TestAddItemMergesQuantities() {
	_, err := suite.service.AddItem(suite.user.ID, &AddToCartRequest{
		ProductID: suite.product.ID,
		Quantity:  2,
	})
	require.NoError(suite.T(), err)

	item, err := suite.service.AddItem(suite.user.ID, &AddToCartRequest{
		ProductID: suite.product.ID,
		Quantity:  1,
	})
	require.NoError(suite.T(), err)
	suite.Equal(3, item.Quantity)

	// Still a single row.
	var count int64
	suite.db.Model(&models.CartItem{}).Where("user_id = ?", suite.user.ID).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *CartServiceTestSuite) TestAddItemRejectsOverStock() {
	_, err := suite.service.AddItem(suite.user.ID, &AddToCartRequest{
		ProductID: suite.product.ID,
		Quantity:  6,
	})
	suite.Error(err)
	suite.IsType(&DomainError{}, err)
}

func (suite *CartServiceTestSuite) TestAddItemRejectsMergedOverStock() {
	_, err := suite.service.AddItem(suite.user.ID, &AddToCartRequest{
		ProductID: suite.product.ID,
		Quantity:  4,
	})
	require.NoError(suite.T(), err)

	// 4 already in the cart, so 2 more would exceed the 5 in stock.
	_, err = suite.service.AddItem(suite.user.ID, &AddToCartRequest{
		ProductID: suite.product.ID,
		Quantity:  2,
	})
	suite.Error(err)
	suite.IsType(&DomainError{}, err)
}

func (suite *CartServiceTestSuite) TestAddItemRejectsInactiveProduct() {
	suite.db.Model(suite.product).Update("is_active", false)

	_, err := suite.service.AddItem(suite.user.ID, &AddToCartRequest{
		ProductID: suite.product.ID,
		Quantity:  1,
	})
	suite.Error(err)
	suite.IsType(&NotFoundError{}, err)
}

func (suite *CartServiceTestSuite) TestGetCartSummary() {
	addToCart(suite.T(), suite.db, suite.user.ID, suite.product.ID, 3)

	summary, err := suite.service.GetCart(suite.user.ID)
	require.NoError(suite.T(), err)
	suite.Equal(3, summary.TotalItems)
	suite.Equal(76.50, summary.Subtotal)
	suite.Len(summary.Items, 1)
}

func (suite *CartServiceTestSuite) TestUpdateItem() {
	addToCart(suite.T(), suite.db, suite.user.ID, suite.product.ID, 1)

	var item models.CartItem
	suite.db.Where("user_id = ?", suite.user.ID).First(&item)

	updated, err := suite.service.UpdateItem(suite.user.ID, item.ID, &UpdateCartItemRequest{Quantity: 4})
	require.NoError(suite.T(), err)
	suite.Equal(4, updated.Quantity)

	_, err = suite.service.UpdateItem(suite.user.ID, item.ID, &UpdateCartItemRequest{Quantity: 9})
	suite.Error(err)
	suite.IsType(&DomainError{}, err)
}

func (suite *CartServiceTestSuite) TestRemoveItemScopedToOwner() {
	addToCart(suite.T(), suite.db, suite.user.ID, suite.product.ID, 1)

	var item models.CartItem
	suite.db.Where("user_id = ?", suite.user.ID).First(&item)

	other := createTestUser(suite.T(), suite.db, "other@example.com")
	err := suite.service.RemoveItem(other.ID, item.ID)
	suite.Error(err)
	suite.IsType(&NotFoundError{}, err)

	require.NoError(suite.T(), suite.service.RemoveItem(suite.user.ID, item.ID))
}

func (suite *CartServiceTestSuite) TestClearAndCount() {
	addToCart(suite.T(), suite.db, suite.user.ID, suite.product.ID, 2)

	count, err := suite.service.Count(suite.user.ID)
	require.NoError(suite.T(), err)
	suite.Equal(2, count)

	require.NoError(suite.T(), suite.service.ClearCart(suite.user.ID))

	count, err = suite.service.Count(suite.user.ID)
	require.NoError(suite.T(), err)
	suite.Equal(0, count)
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}
