package v1

import (
	"errors"
	"net/http"

	"github.com/expensetracker/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errMonthNotSetInQuery = errors.New("the month query parameter must be set")
	errExpenseNotOwned    = errors.New("you do not have access to this expense")
)

// Auth errors
var (
	errCredentialsNotSet    = errors.New("email and password must be set")
	errPasswordTooShort     = errors.New("the password must be at least 6 characters long")
	errCredentialsIncorrect = errors.New("invalid credentials")
)
