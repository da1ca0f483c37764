package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/ecomdev/electronics-shop-api/internal/models"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *ProductService
	category *models.Category
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewProductService(suite.db)
	suite.category = createTestCategory(suite.T(), suite.db, "Audio")
}

func (suite *ProductServiceTestSuite) TestCreate() {
	product, err := suite.service.Create(&CreateProductRequest{
		Name:       "Headphones",
		Price:      149.99,
		SKU:        "HDP-001",
		CategoryID: suite.category.ID,
		Specifications: map[string]interface{}{
			"impedance": "32 ohm",
		},
	})
	require.NoError(suite.T(), err)
	suite.True(product.IsActive)
	suite.Equal(12, product.WarrantyMonths)
	suite.Equal("Audio", product.Category.Name)
}

func (suite *ProductServiceTestSuite) TestCreateGeneratesSKUWhenAbsent() {
	product, err := suite.service.Create(&CreateProductRequest{
		Name:       "Headphones",
		Price:      149.99,
		CategoryID: suite.category.ID,
	})
	require.NoError(suite.T(), err)
	suite.NotEmpty(product.SKU)
}

func (suite *ProductServiceTestSuite) TestCreateRejectsDuplicateSKU() {
	req := &CreateProductRequest{
		Name:       "Headphones",
		Price:      149.99,
		SKU:        "HDP-001",
		CategoryID: suite.category.ID,
	}
	_, err := suite.service.Create(req)
	require.NoError(suite.T(), err)

	_, err = suite.service.Create(req)
	suite.Error(err)
	suite.IsType(&ConflictError{}, err)
}

func (suite *ProductServiceTestSuite) TestCreateRejectsUnknownCategory() {
	_, err := suite.service.Create(&CreateProductRequest{
		Name:       "Headphones",
		Price:      149.99,
		CategoryID: suite.category.ID,
	})
	suite.NoError(err)

	fake := createTestCategory(suite.T(), suite.db, "Temp")
	require.NoError(suite.T(), suite.db.Unscoped().Delete(fake).Error)

	_, err = suite.service.Create(&CreateProductRequest{
		Name:       "Speakers",
		Price:      99.99,
		CategoryID: fake.ID,
	})
	suite.Error(err)
	suite.IsType(&NotFoundError{}, err)
}

func (suite *ProductServiceTestSuite) TestSearchZeroParamsReturnsFirstPage() {
	createTestProduct(suite.T(), suite.db, suite.category.ID, "Speaker", 79.99, 5)

	products, total, err := suite.service.Search(ProductSearchParams{})
	require.NoError(suite.T(), err)
	suite.Equal(int64(1), total)
	suite.Len(products, 1)
}

func (suite *ProductServiceTestSuite) TestGetIncrementsViews() {
	product := createTestProduct(suite.T(), suite.db, suite.category.ID, "Speaker", 79.99, 5)

	fetched, err := suite.service.Get(product.ID)
	require.NoError(suite.T(), err)
	suite.Equal(int64(1), fetched.ViewsCount)

	fetched, err = suite.service.Get(product.ID)
	require.NoError(suite.T(), err)
	suite.Equal(int64(2), fetched.ViewsCount)
}

func (suite *ProductServiceTestSuite) TestGetHidesInactive() {
	product := createTestProduct(suite.T(), suite.db, suite.category.ID, "Speaker", 79.99, 5)
	suite.db.Model(product).Update("is_active", false)

	_, err := suite.service.Get(product.ID)
	suite.Error(err)
	suite.IsType(&NotFoundError{}, err)
}

func (suite *ProductServiceTestSuite) TestSearchFilters() {
	cheap := createTestProduct(suite.T(), suite.db, suite.category.ID, "Earbuds", 19.99, 5)
	createTestProduct(suite.T(), suite.db, suite.category.ID, "Soundbar", 299.99, 0)

	min := 10.0
	max := 50.0
	products, total, err := suite.service.Search(ProductSearchParams{
		PriceMin: &min,
		PriceMax: &max,
	})
	require.NoError(suite.T(), err)
	suite.Equal(int64(1), total)
	require.Len(suite.T(), products, 1)
	suite.Equal(cheap.ID, products[0].ID)

	// in_stock excludes the sold-out soundbar.
	products, total, err = suite.service.Search(ProductSearchParams{InStock: true})
	require.NoError(suite.T(), err)
	suite.Equal(int64(1), total)

	// Free-text search matches name case-insensitively.
	products, total, err = suite.service.Search(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Search: "soundBAR"},
	})
	require.NoError(suite.T(), err)
	suite.Equal(int64(1), total)
	require.Len(suite.T(), products, 1)
	suite.Equal("Soundbar", products[0].Name)
}

func (suite *ProductServiceTestSuite) TestSearchSortAllowList() {
	createTestProduct(suite.T(), suite.db, suite.category.ID, "A", 10, 5)
	createTestProduct(suite.T(), suite.db, suite.category.ID, "B", 20, 5)

	products, _, err := suite.service.Search(ProductSearchParams{
		PaginationParams: utils.PaginationParams{SortBy: "price", SortOrder: "desc"},
	})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), products, 2)
	suite.Equal("B", products[0].Name)

	// Unlisted sort columns fall back without error.
	_, _, err = suite.service.Search(ProductSearchParams{
		PaginationParams: utils.PaginationParams{SortBy: "password_hash; DROP TABLE users"},
	})
	suite.NoError(err)
}

func (suite *ProductServiceTestSuite) TestUpdatePartialFields() {
	product := createTestProduct(suite.T(), suite.db, suite.category.ID, "Speaker", 79.99, 5)

	sale := 59.99
	updated, err := suite.service.Update(product.ID, &UpdateProductRequest{
		SalePrice: &sale,
		Brand:     "Acme",
	})
	require.NoError(suite.T(), err)
	suite.Equal("Speaker", updated.Name)
	suite.Equal("Acme", updated.Brand)
	require.NotNil(suite.T(), updated.SalePrice)
	suite.Equal(59.99, *updated.SalePrice)
	suite.Equal(59.99, updated.CurrentPrice())
}

func (suite *ProductServiceTestSuite) TestDeleteDeactivates() {
	product := createTestProduct(suite.T(), suite.db, suite.category.ID, "Speaker", 79.99, 5)

	require.NoError(suite.T(), suite.service.Delete(product.ID))

	var stored models.Product
	require.NoError(suite.T(), suite.db.First(&stored, "id = ?", product.ID).Error)
	suite.False(stored.IsActive)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
