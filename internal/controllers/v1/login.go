package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shulebooks/backend/internal/auth"
	"github.com/shulebooks/backend/internal/httputil"
	"github.com/shulebooks/backend/internal/models"
)

// RegisterLoginRoutes registers the routes for logging in with
// the RouterGroup that is passed.
func RegisterLoginRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsLogin)
	r.POST("", Login)
}

// LoginEditable are the credentials for a login request
type LoginEditable struct {
	Email    string `json:"email" example:"admin@example.com" default:""` // Email address of the administrator
	Password string `json:"password" example:"hunter2" default:""`        // Password of the administrator
}

type LoginData struct {
	Token string `json:"token"`                             // Bearer token for subsequent requests
	Email string `json:"email" example:"admin@example.com"` // Email address of the authenticated user
	Name  string `json:"name" example:"Admin"`              // Name of the authenticated user
}

type LoginResponse struct {
	Data  *LoginData `json:"data"`                                                       // Data for the login
	Error *string    `json:"error" example:"the email address or password is incorrect"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Login
// @Success		204
// @Router			/v1/login [options]
func OptionsLogin(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Log in
// @Description	Verifies the administrator credentials and returns a bearer token
// @Tags			Login
// @Accept			json
// @Produce		json
// @Success		200			{object}	LoginResponse
// @Failure		400			{object}	LoginResponse
// @Failure		401			{object}	LoginResponse
// @Failure		500			{object}	LoginResponse
// @Param			credentials	body		LoginEditable	true	"Credentials"
// @Router			/v1/login [post]
func Login(c *gin.Context) {
	var credentials LoginEditable

	err := httputil.BindData(c, &credentials)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LoginResponse{
			Error: &s,
		})
		return
	}

	// Stored email addresses are lowercased, match that here
	var user models.User
	err = models.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(credentials.Email))).First(&user).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			s := errLoginFailed.Error()
			c.JSON(http.StatusUnauthorized, LoginResponse{
				Error: &s,
			})
			return
		}

		s := err.Error()
		c.JSON(status(err), LoginResponse{
			Error: &s,
		})
		return
	}

	if !user.CheckPassword(credentials.Password) {
		s := errLoginFailed.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{
			Error: &s,
		})
		return
	}

	token, err := auth.IssueToken(user.ID.String(), user.Email, user.Name)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, LoginResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Data: &LoginData{
			Token: token,
			Email: user.Email,
			Name:  user.Name,
		},
	})
}
