// Package auth implements token based authentication for the API.
//
// Tokens are HMAC signed JWTs carrying the user ID as subject. The
// signing secret comes from the JWT_SECRET environment variable.
package auth

import (
	"errors"
	"os"
	"time"

	"github.com/expensetracker/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenLifetime is how long an issued token stays valid.
const TokenLifetime = 7 * 24 * time.Hour

var (
	ErrNoToken      = errors.New("no token, authorization denied")
	ErrInvalidToken = errors.New("the token is not valid")
	ErrUserGone     = errors.New("the user no longer exists")
)

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// NewToken signs a token for the user.
func NewToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID.String(),
		"exp": time.Now().Add(TokenLifetime).Unix(),
	})

	return token.SignedString(secret())
}

// ParseToken verifies the token signature and expiry and returns the ID
// of the user it was issued for.
func ParseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return id, nil
}
