package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"github.com/shulebooks/backend/internal/httputil"
	"github.com/shulebooks/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterTeacherRoutes registers the routes for teachers with
// the RouterGroup that is passed.
func RegisterTeacherRoutes(r *gin.RouterGroup) {
	registerStaffMemberRoutes(r, models.RoleTeacher)
}

// RegisterStaffRoutes registers the routes for non-teaching staff with
// the RouterGroup that is passed.
func RegisterStaffRoutes(r *gin.RouterGroup) {
	registerStaffMemberRoutes(r, models.RoleSupport)
}

// Teachers and support staff share their handlers, the only difference
// is the role the endpoint is scoped to and the delete behavior.
func registerStaffMemberRoutes(r *gin.RouterGroup, role models.StaffRole) {
	// Root group
	{
		r.OPTIONS("", OptionsStaffMemberList)
		r.GET("", GetStaffMembers(role))
		r.POST("", CreateStaffMembers(role))
	}

	// Staff member with ID
	{
		r.OPTIONS("/:id", OptionsStaffMemberDetail(role))
		r.GET("/:id", GetStaffMember(role))
		r.PATCH("/:id", UpdateStaffMember(role))
		r.DELETE("/:id", DeleteStaffMember(role))
	}

	// Payroll for a staff member
	{
		r.OPTIONS("/:id/payroll", OptionsPayroll(role))
		r.GET("/:id/payroll", GetPayrollStatus(role))
		r.POST("/:id/payroll", MarkPaid(role))
		r.DELETE("/:id/payroll", UndoPayment(role))
	}
}

// getStaffMember loads the staff member the URI points to, scoped to
// the role of the endpoint.
func getStaffMember(c *gin.Context, role models.StaffRole) (models.StaffMember, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.StaffMember{}, err
	}

	var member models.StaffMember
	err = models.DB.Where("role = ?", role).First(&member, uri.ID).Error
	if err != nil {
		return models.StaffMember{}, err
	}

	return member, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Staff
// @Success		204
// @Router			/v1/teachers [options]
// @Router			/v1/staff [options]
func OptionsStaffMemberList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsStaffMemberDetail returns the allowed HTTP methods
//
// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Staff
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/teachers/{id} [options]
// @Router			/v1/staff/{id} [options]
func OptionsStaffMemberDetail(role models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := getStaffMember(c, role)
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		httputil.OptionsGetPatchDelete(c)
	}
}

// CreateStaffMembers creates new staff members with the role of the
// endpoint
//
// @Summary		Create staff members
// @Description	Creates new staff members
// @Tags			Staff
// @Produce		json
// @Success		201		{object}	StaffMemberCreateResponse
// @Failure		400		{object}	StaffMemberCreateResponse
// @Failure		500		{object}	StaffMemberCreateResponse
// @Param			staff	body		[]StaffMemberEditable	true	"Staff members"
// @Router			/v1/teachers [post]
// @Router			/v1/staff [post]
func CreateStaffMembers(role models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		var editables []StaffMemberEditable

		err := httputil.BindData(c, &editables)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), StaffMemberCreateResponse{
				Error: &e,
			})
			return
		}

		// The final http status. Will be modified when errors occur
		httpStatus := http.StatusCreated
		r := StaffMemberCreateResponse{}

		for _, editable := range editables {
			member := editable.model(role)

			err = models.DB.Create(&member).Error
			if err != nil {
				httpStatus = r.appendError(err, httpStatus)
				continue
			}

			data, err := newStaffMember(c, models.DB, member)
			if err != nil {
				httpStatus = r.appendError(err, httpStatus)
				continue
			}
			r.Data = append(r.Data, StaffMemberResponse{Data: &data})
		}

		c.JSON(httpStatus, r)
	}
}

// GetStaffMembers returns the list of staff members with the role of
// the endpoint
//
// @Summary		Get staff members
// @Description	Returns a list of staff members
// @Tags			Staff
// @Produce		json
// @Success		200	{object}	StaffMemberListResponse
// @Failure		400	{object}	StaffMemberListResponse
// @Failure		500	{object}	StaffMemberListResponse
// @Router			/v1/teachers [get]
// @Router			/v1/staff [get]
// @Param			name	query	string	false	"Filter by name, glob patterns are supported"
// @Param			active	query	bool	false	"Is the staff member currently employed?"
// @Param			offset	query	uint	false	"The offset of the first staff member returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of staff members to return. Defaults to 50."
func GetStaffMembers(role models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter StaffMemberQueryFilter

		// Every parameter is bound into a string, so this will always succeed
		_ = c.Bind(&filter)

		// Get the fields that we are filtering for. Role is not part of
		// the filter struct, it is always set from the endpoint.
		queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
		queryFields = append(queryFields, "Role")

		filterModel := filter.model(role)

		var members []models.StaffMember
		err := models.DB.
			Order("last_name ASC, first_name ASC").
			Where(&filterModel, queryFields...).
			Find(&members).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), StaffMemberListResponse{
				Error: &s,
			})
			return
		}

		// Name matching uses glob patterns, which sqlite LIKE does not
		// support, so it happens here and not in the query. A filter
		// without glob characters matches as substring.
		if filter.Name != "" {
			pattern := strings.ToLower(filter.Name)
			if !strings.Contains(pattern, "*") {
				pattern = "*" + pattern + "*"
			}

			matched := make([]models.StaffMember, 0, len(members))
			for _, member := range members {
				name := strings.ToLower(member.FirstName + " " + member.LastName)
				if glob.Glob(pattern, name) {
					matched = append(matched, member)
				}
			}
			members = matched
		}

		total := int64(len(members))

		// Set the offset. Does not need checking since the default is 0
		if int(filter.Offset) < len(members) {
			members = members[filter.Offset:]
		} else {
			members = members[:0]
		}

		// Default to 50 staff members and set the limit
		limit := 50
		if slices.Contains(setFields, "Limit") {
			limit = filter.Limit
		}
		if limit >= 0 && limit < len(members) {
			members = members[:limit]
		}

		data := make([]StaffMember, 0, len(members))
		for _, member := range members {
			apiResource, err := newStaffMember(c, models.DB, member)
			if err != nil {
				s := err.Error()
				c.JSON(status(err), StaffMemberListResponse{
					Error: &s,
				})
				return
			}
			data = append(data, apiResource)
		}

		c.JSON(http.StatusOK, StaffMemberListResponse{
			Data: data,
			Pagination: &Pagination{
				Count:  len(data),
				Total:  total,
				Offset: filter.Offset,
				Limit:  limit,
			},
		})
	}
}

// GetStaffMember returns a single staff member
//
// @Summary		Get staff member
// @Description	Returns a specific staff member
// @Tags			Staff
// @Produce		json
// @Success		200	{object}	StaffMemberResponse
// @Failure		400	{object}	StaffMemberResponse
// @Failure		404	{object}	StaffMemberResponse
// @Failure		500	{object}	StaffMemberResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/teachers/{id} [get]
// @Router			/v1/staff/{id} [get]
func GetStaffMember(role models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		member, err := getStaffMember(c, role)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), StaffMemberResponse{
				Error: &s,
			})
			return
		}

		data, err := newStaffMember(c, models.DB, member)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), StaffMemberResponse{
				Error: &s,
			})
			return
		}

		c.JSON(http.StatusOK, StaffMemberResponse{Data: &data})
	}
}

// UpdateStaffMember updates a staff member
//
// @Summary		Update staff member
// @Description	Update an existing staff member. Only values to be updated need to be specified.
// @Tags			Staff
// @Accept			json
// @Produce		json
// @Success		200			{object}	StaffMemberResponse
// @Failure		400			{object}	StaffMemberResponse
// @Failure		404			{object}	StaffMemberResponse
// @Failure		500			{object}	StaffMemberResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			staffMember	body		StaffMemberEditable	true	"Staff member"
// @Router			/v1/teachers/{id} [patch]
// @Router			/v1/staff/{id} [patch]
func UpdateStaffMember(role models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		member, err := getStaffMember(c, role)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), StaffMemberResponse{
				Error: &s,
			})
			return
		}

		updateFields, err := httputil.GetBodyFields(c, StaffMemberEditable{})
		if err != nil {
			s := err.Error()
			c.JSON(status(err), StaffMemberResponse{
				Error: &s,
			})
			return
		}

		var data StaffMemberEditable
		err = httputil.BindData(c, &data)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), StaffMemberResponse{
				Error: &s,
			})
			return
		}

		// The model hook verifies the payment frequency on every save,
		// so fill it in from the existing resource when the request
		// does not set it
		if data.PaymentFrequency == "" {
			data.PaymentFrequency = member.PaymentFrequency
		}

		err = models.DB.Model(&member).Select("", updateFields...).Updates(data.model(role)).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), StaffMemberResponse{
				Error: &s,
			})
			return
		}

		r, err := newStaffMember(c, models.DB, member)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), StaffMemberResponse{
				Error: &s,
			})
			return
		}

		c.JSON(http.StatusOK, StaffMemberResponse{Data: &r})
	}
}

// DeleteStaffMember deletes a staff member. Teachers are deactivated
// instead so that their payroll history stays available, support staff
// are deleted outright together with their payroll records.
//
// @Summary		Delete staff member
// @Description	Deletes a staff member. Teachers are deactivated instead of deleted.
// @Tags			Staff
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/teachers/{id} [delete]
// @Router			/v1/staff/{id} [delete]
func DeleteStaffMember(role models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		member, err := getStaffMember(c, role)
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		if role == models.RoleTeacher {
			err = models.DB.Model(&member).Update("active", false).Error
		} else {
			err = models.DB.Unscoped().Delete(&member).Error
		}
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		c.JSON(http.StatusNoContent, nil)
	}
}
