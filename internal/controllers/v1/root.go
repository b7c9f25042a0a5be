package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shulebooks/backend/internal/httputil"
	"github.com/shulebooks/backend/internal/models"
)

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Students      string `json:"students" example:"https://example.com/api/v1/students"`            // URL of student list endpoint
	Teachers      string `json:"teachers" example:"https://example.com/api/v1/teachers"`            // URL of teacher list endpoint
	Staff         string `json:"staff" example:"https://example.com/api/v1/staff"`                  // URL of support staff list endpoint
	FeeStructures string `json:"feeStructures" example:"https://example.com/api/v1/fee-structures"` // URL of fee structure list endpoint
	Payments      string `json:"payments" example:"https://example.com/api/v1/payments"`            // URL of fee payment list endpoint
	Login         string `json:"login" example:"https://example.com/api/v1/login"`                  // URL of the login endpoint
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Students:      url + "/v1/students",
			Teachers:      url + "/v1/teachers",
			Staff:         url + "/v1/staff",
			FeeStructures: url + "/v1/fee-structures",
			Payments:      url + "/v1/payments",
			Login:         url + "/v1/login",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
