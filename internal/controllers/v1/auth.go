package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/expensetracker/backend/internal/auth"
	"github.com/expensetracker/backend/internal/httputil"
	"github.com/expensetracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", OptionsAuthRegister)
	r.POST("/register", Register)

	r.OPTIONS("/login", OptionsAuthLogin)
	r.POST("/login", Login)

	// The current user endpoint needs an authenticated caller
	user := r.Group("/user", auth.Middleware())
	user.OPTIONS("", OptionsAuthUser)
	user.GET("", GetAuthUser)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/register [options]
func OptionsAuthRegister(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/login [options]
func OptionsAuthLogin(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth/user [options]
func OptionsAuthUser(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Register
// @Description	Creates a new user account and returns a token for it
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201			{object}	TokenResponse
// @Failure		400			{object}	TokenResponse
// @Failure		409			{object}	TokenResponse
// @Failure		500			{object}	TokenResponse
// @Param			credentials	body		RegisterRequest	true	"Credentials"
// @Router			/v1/auth/register [post]
func Register(c *gin.Context) {
	var request RegisterRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TokenResponse{Error: &e})
		return
	}

	if strings.TrimSpace(request.Email) == "" || request.Password == "" {
		e := errCredentialsNotSet.Error()
		c.JSON(http.StatusBadRequest, TokenResponse{Error: &e})
		return
	}

	if len(request.Password) < 6 {
		e := errPasswordTooShort.Error()
		c.JSON(http.StatusBadRequest, TokenResponse{Error: &e})
		return
	}

	user := models.User{
		Name:  request.Name,
		Email: request.Email,
	}

	err = user.SetPassword(request.Password)
	if err != nil {
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, TokenResponse{Error: &e})
		return
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		e := err.Error()
		if errors.Is(err, models.ErrEmailTaken) {
			c.JSON(http.StatusConflict, TokenResponse{Error: &e})
			return
		}

		c.JSON(status(err), TokenResponse{Error: &e})
		return
	}

	token, err := auth.NewToken(user)
	if err != nil {
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, TokenResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{Token: token})
}

// @Summary		Login
// @Description	Verifies the credentials and returns a token for the user
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	TokenResponse
// @Failure		400			{object}	TokenResponse
// @Failure		401			{object}	TokenResponse
// @Failure		500			{object}	TokenResponse
// @Param			credentials	body		LoginRequest	true	"Credentials"
// @Router			/v1/auth/login [post]
func Login(c *gin.Context) {
	var request LoginRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TokenResponse{Error: &e})
		return
	}

	var user models.User
	err = models.DB.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(request.Email))).Error
	if err != nil {
		if errors.Is(err, models.ErrGeneral) {
			e := err.Error()
			c.JSON(http.StatusInternalServerError, TokenResponse{Error: &e})
			return
		}

		// Do not tell the caller whether the email or the password
		// was wrong
		e := errCredentialsIncorrect.Error()
		c.JSON(http.StatusUnauthorized, TokenResponse{Error: &e})
		return
	}

	if !user.CheckPassword(request.Password) {
		e := errCredentialsIncorrect.Error()
		c.JSON(http.StatusUnauthorized, TokenResponse{Error: &e})
		return
	}

	token, err := auth.NewToken(user)
	if err != nil {
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, TokenResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// @Summary		Current user
// @Description	Returns the user the token was issued for
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httputil.HTTPError
// @Router			/v1/auth/user [get]
func GetAuthUser(c *gin.Context) {
	user := auth.CurrentUser(c)
	c.JSON(http.StatusOK, UserResponse{Data: &user})
}
