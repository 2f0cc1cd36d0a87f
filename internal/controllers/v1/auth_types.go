package v1

import (
	"github.com/expensetracker/backend/internal/models"
)

// RegisterRequest is the payload for creating a new user account.
type RegisterRequest struct {
	Name     string `json:"name" example:"Jane Doe"`                    // Display name of the user
	Email    string `json:"email" example:"jane@example.com"`           // Email address, unique over all users
	Password string `json:"password" example:"correct horse battery"`   // Cleartext password, stored as a bcrypt hash
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"correct horse battery"`
}

// TokenResponse carries a signed token for the user.
type TokenResponse struct {
	Token string  `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...."` // The signed token
	Error *string `json:"error,omitempty" example:"invalid credentials"`            // The error, if any occurred
}

// UserResponse carries the user resource for the authenticated caller.
type UserResponse struct {
	Data  *models.User `json:"data"`                                          // The user data
	Error *string      `json:"error,omitempty" example:"the token is not valid"` // The error, if any occurred
}
