package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CategoryService
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewCategoryService(suite.db)
}

func (suite *CategoryServiceTestSuite) TestCreateAndGet() {
	created, err := suite.service.Create(&CategoryRequest{Name: "Laptops"})
	require.NoError(suite.T(), err)
	suite.True(created.IsActive)

	fetched, err := suite.service.Get(created.ID)
	require.NoError(suite.T(), err)
	suite.Equal("Laptops", fetched.Name)
}

func (suite *CategoryServiceTestSuite) TestCreateRejectsDuplicateName() {
	_, err := suite.service.Create(&CategoryRequest{Name: "Laptops"})
	require.NoError(suite.T(), err)

	_, err = suite.service.Create(&CategoryRequest{Name: "Laptops"})
	suite.Error(err)
	suite.IsType(&ConflictError{}, err)
}

func (suite *CategoryServiceTestSuite) TestUpdateRejectsNameCollision() {
	laptops, err := suite.service.Create(&CategoryRequest{Name: "Laptops"})
	require.NoError(suite.T(), err)
	_, err = suite.service.Create(&CategoryRequest{Name: "Phones"})
	require.NoError(suite.T(), err)

	_, err = suite.service.Update(laptops.ID, &CategoryRequest{Name: "Phones"})
	suite.Error(err)
	suite.IsType(&ConflictError{}, err)
}

func (suite *CategoryServiceTestSuite) TestDeleteRefusedWithActiveProducts() {
	category, err := suite.service.Create(&CategoryRequest{Name: "Laptops"})
	require.NoError(suite.T(), err)

	createTestProduct(suite.T(), suite.db, category.ID, "Laptop", 999, 3)

	err = suite.service.Delete(category.ID)
	suite.Error(err)
	suite.IsType(&DomainError{}, err)
}

func (suite *CategoryServiceTestSuite) TestDeleteEmptyCategory() {
	category, err := suite.service.Create(&CategoryRequest{Name: "Laptops"})
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.service.Delete(category.ID))

	_, err = suite.service.Get(category.ID)
	suite.Error(err)
	suite.IsType(&NotFoundError{}, err)
}

func (suite *CategoryServiceTestSuite) TestListActiveCountsProducts() {
	category, err := suite.service.Create(&CategoryRequest{Name: "Laptops"})
	require.NoError(suite.T(), err)
	createTestProduct(suite.T(), suite.db, category.ID, "A", 10, 1)
	createTestProduct(suite.T(), suite.db, category.ID, "B", 20, 1)

	inactive := createTestProduct(suite.T(), suite.db, category.ID, "C", 30, 1)
	suite.db.Model(inactive).Update("is_active", false)

	categories, counts, err := suite.service.ListActive()
	require.NoError(suite.T(), err)
	suite.Len(categories, 1)
	suite.Equal(int64(2), counts[category.ID])
}

func (suite *CategoryServiceTestSuite) TestToggleStatus() {
	category, err := suite.service.Create(&CategoryRequest{Name: "Laptops"})
	require.NoError(suite.T(), err)

	toggled, err := suite.service.ToggleStatus(category.ID)
	require.NoError(suite.T(), err)
	suite.False(toggled.IsActive)

	toggled, err = suite.service.ToggleStatus(category.ID)
	require.NoError(suite.T(), err)
	suite.True(toggled.IsActive)
}

func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
