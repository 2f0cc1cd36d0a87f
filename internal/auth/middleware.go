package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/expensetracker/backend/internal/httputil"
	"github.com/expensetracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// ContextUser is the key the authenticated user is stored under in the
// gin context.
const ContextUser = "auth:user"

// Middleware authenticates the request.
//
// It aborts with 401 when no valid token is sent or the user the token
// was issued for does not exist anymore. On success the user is stored
// in the request context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.HTTPError{Error: ErrNoToken.Error()})
			return
		}

		id, err := ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.HTTPError{Error: err.Error()})
			return
		}

		// Verify the user still exists
		var user models.User
		err = models.DB.First(&user, "id = ?", id).Error
		if errors.Is(err, models.ErrGeneral) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, httputil.HTTPError{Error: err.Error()})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.HTTPError{Error: ErrUserGone.Error()})
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user for the request. It must
// only be called from handlers behind Middleware.
func CurrentUser(c *gin.Context) models.User {
	return c.MustGet(ContextUser).(models.User)
}

// tokenFromRequest extracts the token from the request headers.
//
// The web client sends the token in the x-auth-token header, other API
// consumers use the Authorization header with the Bearer scheme.
func tokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return c.GetHeader("x-auth-token")
}
