package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	v1 "github.com/expensetracker/backend/internal/controllers/v1"
	"github.com/expensetracker/backend/internal/models"
	"github.com/expensetracker/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRegister() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", map[string]string{
		"name":     "Jane Doe",
		"email":    test.RandomEmail(),
		"password": "correct horse battery",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.TokenResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().NotEmpty(response.Token)
	suite.Assert().Nil(response.Error)
}

func (suite *TestSuiteStandard) TestRegisterInvalidBody() {
	tests := []struct {
		name  string
		body  string
		error string
	}{
		{"Empty body", "", "the request body must not be empty"},
		{"Missing password", fmt.Sprintf(`{ "email": "%s" }`, test.RandomEmail()), "email and password must be set"},
		{"Missing email", `{ "password": "correct horse battery" }`, "email and password must be set"},
		{"Short password", fmt.Sprintf(`{ "email": "%s", "password": "nope" }`, test.RandomEmail()), "the password must be at least 6 characters long"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/auth/register", tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)

			var response v1.TokenResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, tt.error, *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestRegisterDuplicateEmail() {
	email := test.RandomEmail()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", map[string]string{
		"email":    email,
		"password": "correct horse battery",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	// Email comparison is case insensitive
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", map[string]string{
		"email":    strings.ToUpper(email),
		"password": "another password",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)

	var response v1.TokenResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal(models.ErrEmailTaken.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestLogin() {
	email := test.RandomEmail()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", map[string]string{
		"email":    email,
		"password": "correct horse battery",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/login", map[string]string{
		"email":    email,
		"password": "correct horse battery",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TokenResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().NotEmpty(response.Token)
}

// TestLoginIncorrectCredentials verifies that an unknown email and a
// wrong password are indistinguishable for the caller.
func (suite *TestSuiteStandard) TestLoginIncorrectCredentials() {
	email := test.RandomEmail()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", map[string]string{
		"email":    email,
		"password": "correct horse battery",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"Wrong password", map[string]string{"email": email, "password": "wrong password"}},
		{"Unknown email", map[string]string{"email": test.RandomEmail(), "password": "correct horse battery"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/auth/login", tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusUnauthorized)

			var response v1.TokenResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, "invalid credentials", *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestGetAuthUser() {
	email := test.RandomEmail()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", map[string]string{
		"name":     "Jane Doe",
		"email":    email,
		"password": "correct horse battery",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var tokenResponse v1.TokenResponse
	test.DecodeResponse(suite.T(), &recorder, &tokenResponse)

	headers := []map[string]string{
		test.AuthHeader(tokenResponse.Token),
		{"x-auth-token": tokenResponse.Token},
	}

	// Both the Authorization header and the x-auth-token header
	// authenticate the request
	for _, header := range headers {
		recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/auth/user", "", header)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

		var response v1.UserResponse
		test.DecodeResponse(suite.T(), &recorder, &response)
		suite.Require().NotNil(response.Data)
		suite.Assert().Equal(email, response.Data.Email)
		suite.Assert().Equal("Jane Doe", response.Data.Name)
	}
}

func (suite *TestSuiteStandard) TestAuthUserNoToken() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/auth/user", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
	suite.Assert().Contains(recorder.Body.String(), "no token, authorization denied")
}

func (suite *TestSuiteStandard) TestAuthUserInvalidToken() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/auth/user", "", test.AuthHeader("not.a.token"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
	suite.Assert().Contains(recorder.Body.String(), "the token is not valid")
}

// TestAuthUserGone verifies that a valid token for a deleted user is
// rejected.
func (suite *TestSuiteStandard) TestAuthUserGone() {
	token := suite.registerTestUser()
	user := suite.currentUser(token)

	suite.Require().Nil(models.DB.Delete(&models.User{}, "id = ?", user.ID).Error)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/auth/user", "", test.AuthHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
	suite.Assert().Contains(recorder.Body.String(), "the user no longer exists")
}

func (suite *TestSuiteStandard) TestAuthOptions() {
	tests := []struct {
		path  string
		allow string
	}{
		{"/v1/auth/register", "OPTIONS, POST"},
		{"/v1/auth/login", "OPTIONS, POST"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(t, http.MethodOptions, "http://example.com"+tt.path, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)
			assert.Equal(t, tt.allow, recorder.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestRegisterDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/register", map[string]string{
		"email":    test.RandomEmail(),
		"password": "correct horse battery",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
