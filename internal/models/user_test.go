package models_test

import (
	"errors"
	"strings"

	"github.com/expensetracker/backend/internal/models"
	"github.com/expensetracker/backend/test"
)

func (suite *TestSuiteStandard) TestUserPassword() {
	user := suite.createTestUser()

	suite.Assert().True(user.CheckPassword("a test password"))
	suite.Assert().False(user.CheckPassword("not the password"))

	// The plain text password is never stored
	suite.Assert().NotContains(user.PasswordHash, "a test password")
}

func (suite *TestSuiteStandard) TestUserEmailNormalized() {
	user := models.User{
		Name:  "Test User",
		Email: "  Jane.Doe@Example.COM ",
	}
	suite.Require().Nil(user.SetPassword("a test password"))
	suite.Require().Nil(models.DB.Create(&user).Error)

	suite.Assert().Equal("jane.doe@example.com", user.Email)
}

func (suite *TestSuiteStandard) TestUserEmailRequired() {
	user := models.User{Name: "Test User"}
	suite.Require().Nil(user.SetPassword("a test password"))

	err := models.DB.Create(&user).Error
	suite.Assert().True(errors.Is(err, models.ErrEmailRequired), "Expected ErrEmailRequired, got %v", err)
}

func (suite *TestSuiteStandard) TestUserEmailUnique() {
	email := test.RandomEmail()

	first := models.User{Name: "First", Email: email}
	suite.Require().Nil(first.SetPassword("a test password"))
	suite.Require().Nil(models.DB.Create(&first).Error)

	// The unique index is case insensitive since emails are lowercased
	second := models.User{Name: "Second", Email: strings.ToUpper(email)}
	suite.Require().Nil(second.SetPassword("a test password"))

	err := models.DB.Create(&second).Error
	suite.Assert().True(errors.Is(err, models.ErrEmailTaken), "Expected ErrEmailTaken, got %v", err)
}
