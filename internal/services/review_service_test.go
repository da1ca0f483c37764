package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/ecomdev/electronics-shop-api/internal/models"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ReviewService
	user    *models.User
	product *models.Product
}

func (suite *ReviewServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewReviewService(suite.db)

	suite.user = createTestUser(suite.T(), suite.db, "reviewer@example.com")
	category := createTestCategory(suite.T(), suite.db, "Cameras")
	suite.product = createTestProduct(suite.T(), suite.db, category.ID, "Camera", 499, 5)
}

func (suite *ReviewServiceTestSuite) TestCreatePendingByDefault() {
	review, err := suite.service.Create(suite.user.ID, suite.product.ID, &CreateReviewRequest{
		Rating: 4,
		Title:  "Solid",
	})
	require.NoError(suite.T(), err)
	suite.Equal(models.ReviewStatusPending, review.Status)
	suite.False(review.IsVerifiedPurchase)
}

func (suite *ReviewServiceTestSuite) TestCreateRejectsDuplicate() {
	_, err := suite.service.Create(suite.user.ID, suite.product.ID, &CreateReviewRequest{Rating: 4})
	require.NoError(suite.T(), err)

	_, err = suite.service.Create(suite.user.ID, suite.product.ID, &CreateReviewRequest{Rating: 5})
	suite.Error(err)
	suite.IsType(&ConflictError{}, err)
}

func (suite *ReviewServiceTestSuite) TestCreateRejectsInvalidRating() {
	_, err := suite.service.Create(suite.user.ID, suite.product.ID, &CreateReviewRequest{Rating: 6})
	suite.Error(err)
}

func (suite *ReviewServiceTestSuite) TestVerifiedPurchaseFromDeliveredOrder() {
	orderID := createTestOrderID(suite.T(), suite.db, suite.user.ID)
	require.NoError(suite.T(), suite.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", models.OrderStatusDelivered).Error)
	require.NoError(suite.T(), suite.db.Create(&models.OrderItem{
		OrderID:    orderID,
		ProductID:  suite.product.ID,
		Quantity:   1,
		UnitPrice:  499,
		TotalPrice: 499,
	}).Error)

	review, err := suite.service.Create(suite.user.ID, suite.product.ID, &CreateReviewRequest{Rating: 5})
	require.NoError(suite.T(), err)
	suite.True(review.IsVerifiedPurchase)
	require.NotNil(suite.T(), review.OrderID)
	suite.Equal(orderID, *review.OrderID)
}

func (suite *ReviewServiceTestSuite) TestUpdateResetsModeration() {
	review, err := suite.service.Create(suite.user.ID, suite.product.ID, &CreateReviewRequest{Rating: 3})
	require.NoError(suite.T(), err)

	_, err = suite.service.Moderate(review.ID, &ModerateReviewRequest{Status: "approved"})
	require.NoError(suite.T(), err)

	updated, err := suite.service.Update(review.ID, suite.user.ID, &CreateReviewRequest{
		Rating: 5,
		Title:  "Even better after a month",
	})
	require.NoError(suite.T(), err)
	suite.Equal(5, updated.Rating)
	suite.Equal(models.ReviewStatusPending, updated.Status)

	other := createTestUser(suite.T(), suite.db, "other@example.com")
	_, err = suite.service.Update(review.ID, other.ID, &CreateReviewRequest{Rating: 1})
	suite.Error(err)
	suite.IsType(&NotFoundError{}, err)
}

func (suite *ReviewServiceTestSuite) TestListForProductOnlyApproved() {
	review, err := suite.service.Create(suite.user.ID, suite.product.ID, &CreateReviewRequest{Rating: 5})
	require.NoError(suite.T(), err)

	reviews, total, _, err := suite.service.ListForProduct(suite.product.ID, utils.PaginationParams{Page: 1, PerPage: 20})
	require.NoError(suite.T(), err)
	suite.Equal(int64(0), total)
	suite.Empty(reviews)

	_, err = suite.service.Moderate(review.ID, &ModerateReviewRequest{Status: "approved"})
	require.NoError(suite.T(), err)

	reviews, total, summary, err := suite.service.ListForProduct(suite.product.ID, utils.PaginationParams{Page: 1, PerPage: 20})
	require.NoError(suite.T(), err)
	suite.Equal(int64(1), total)
	suite.Len(reviews, 1)
	suite.Equal(5.0, summary.AverageRating)
}

func (suite *ReviewServiceTestSuite) TestModerateRejectsUnknownStatus() {
	review, err := suite.service.Create(suite.user.ID, suite.product.ID, &CreateReviewRequest{Rating: 3})
	require.NoError(suite.T(), err)

	_, err = suite.service.Moderate(review.ID, &ModerateReviewRequest{Status: "archived"})
	suite.Error(err)
}

func TestReviewServiceSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}
