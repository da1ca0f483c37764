package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/ecomdev/electronics-shop-api/internal/models"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	cfg := newTestConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	suite.service = NewAuthService(suite.db, cfg)
}

func (suite *AuthServiceTestSuite) register(email string) *AuthResponse {
	resp, err := suite.service.Register(&RegisterRequest{
		Email:     email,
		Password:  "Password123",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(suite.T(), err)
	return resp
}

func (suite *AuthServiceTestSuite) TestRegister() {
	resp := suite.register("jane@example.com")

	suite.Equal("jane@example.com", resp.User.Email)
	suite.Equal(models.RoleCustomer, resp.User.Role)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.Equal("Bearer", resp.TokenType)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	require.NoError(suite.T(), err)
	suite.Equal(resp.User.ID.String(), claims.UserID)
	suite.Equal("customer", claims.Role)
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsDuplicateEmail() {
	suite.register("jane@example.com")

	_, err := suite.service.Register(&RegisterRequest{
		Email:     "jane@example.com",
		Password:  "Password123",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	suite.Error(err)
	suite.IsType(&ConflictError{}, err)
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsWeakPassword() {
	_, err := suite.service.Register(&RegisterRequest{
		Email:     "weak@example.com",
		Password:  "short",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	suite.register("jane@example.com")

	resp, err := suite.service.Login(&LoginRequest{
		Email:    "jane@example.com",
		Password: "Password123",
	})
	require.NoError(suite.T(), err)
	suite.NotEmpty(resp.AccessToken)
}

func (suite *AuthServiceTestSuite) TestLoginRejectsWrongPassword() {
	suite.register("jane@example.com")

	_, err := suite.service.Login(&LoginRequest{
		Email:    "jane@example.com",
		Password: "WrongPassword1",
	})
	suite.Error(err)
	suite.IsType(&UnauthorizedError{}, err)
	suite.EqualError(err, "invalid email or password")
}

func (suite *AuthServiceTestSuite) TestLoginRejectsUnknownEmail() {
	_, err := suite.service.Login(&LoginRequest{
		Email:    "nobody@example.com",
		Password: "Password123",
	})
	suite.Error(err)
	suite.IsType(&UnauthorizedError{}, err)
	suite.EqualError(err, "invalid email or password")
}

func (suite *AuthServiceTestSuite) TestLoginRejectsDeactivatedAccount() {
	resp := suite.register("jane@example.com")
	suite.db.Model(&models.User{}).Where("id = ?", resp.User.ID).Update("is_active", false)

	_, err := suite.service.Login(&LoginRequest{
		Email:    "jane@example.com",
		Password: "Password123",
	})
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestRefreshToken() {
	resp := suite.register("jane@example.com")

	refreshed, err := suite.service.RefreshToken(resp.RefreshToken)
	require.NoError(suite.T(), err)
	suite.NotEmpty(refreshed.AccessToken)
	suite.Equal(resp.User.ID, refreshed.User.ID)
}

func (suite *AuthServiceTestSuite) TestRefreshTokenRejectsGarbage() {
	_, err := suite.service.RefreshToken("not-a-token")
	suite.Error(err)
	suite.IsType(&UnauthorizedError{}, err)
	suite.EqualError(err, "invalid refresh token")
}

func (suite *AuthServiceTestSuite) TestChangePassword() {
	resp := suite.register("jane@example.com")

	err := suite.service.ChangePassword(resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "WrongPassword1",
		NewPassword:     "NewPassword123",
	})
	suite.Error(err)
	suite.IsType(&DomainError{}, err)

	err = suite.service.ChangePassword(resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "Password123",
		NewPassword:     "NewPassword123",
	})
	require.NoError(suite.T(), err)

	_, err = suite.service.Login(&LoginRequest{
		Email:    "jane@example.com",
		Password: "NewPassword123",
	})
	suite.NoError(err)
}

func (suite *AuthServiceTestSuite) TestUpdateProfile() {
	resp := suite.register("jane@example.com")

	user, err := suite.service.UpdateProfile(resp.User.ID, &UpdateProfileRequest{
		FirstName: "Janet",
		Phone:     "555-0100",
	})
	require.NoError(suite.T(), err)
	suite.Equal("Janet", user.FirstName)
	suite.Equal("Doe", user.LastName)
	suite.Equal("555-0100", user.Phone)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
