package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shulebooks/backend/internal/httputil"
	"github.com/shulebooks/backend/internal/models"
)

// RegisterMaintenanceRoutes registers the routes for maintenance
// operations with the RouterGroup that is passed.
func RegisterMaintenanceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/recompute-balances", OptionsRecomputeBalances)
	r.POST("/recompute-balances", RecomputeBalances)
}

type RecomputeData struct {
	Recomputed int                   `json:"recomputed" example:"42"` // Number of payment groups that were recomputed
	Skipped    []models.SkippedGroup `json:"skipped"`                 // Payment groups that could not be recomputed
}

type RecomputeResponse struct {
	Data  *RecomputeData `json:"data"`  // Data for the recomputation run
	Error *string        `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Maintenance
// @Success		204
// @Router			/v1/maintenance/recompute-balances [options]
func OptionsRecomputeBalances(c *gin.Context) {
	httputil.OptionsPost(c)
}

// RecomputeBalances recomputes the balances of every payment group.
// Groups without a fee structure are skipped and reported, they do not
// abort the run.
//
// @Summary		Recompute balances
// @Description	Recomputes the running balances of all fee payments. Groups without a fee structure are reported as skipped.
// @Tags			Maintenance
// @Produce		json
// @Success		200	{object}	RecomputeResponse
// @Failure		500	{object}	RecomputeResponse
// @Router			/v1/maintenance/recompute-balances [post]
func RecomputeBalances(c *gin.Context) {
	groups, skipped, err := models.RecomputeAllGroups(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecomputeResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, RecomputeResponse{
		Data: &RecomputeData{
			Recomputed: groups - len(skipped),
			Skipped:    skipped,
		},
	})
}
