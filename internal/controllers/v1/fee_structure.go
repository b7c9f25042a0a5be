package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shulebooks/backend/internal/httputil"
	"github.com/shulebooks/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterFeeStructureRoutes registers the routes for fee structures
// with the RouterGroup that is passed.
func RegisterFeeStructureRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsFeeStructureList)
		r.GET("", GetFeeStructures)
		r.POST("", CreateFeeStructures)
	}

	// Fee structure with ID
	{
		r.OPTIONS("/:id", OptionsFeeStructureDetail)
		r.GET("/:id", GetFeeStructure)
		r.PATCH("/:id", UpdateFeeStructure)
		r.DELETE("/:id", DeleteFeeStructure)
	}
}

// recomputeForStructure recomputes the balances of every payment group
// the fee structure applies to. Groups that can not be recomputed are
// logged, they do not fail the request that changed the structure.
func recomputeForStructure(grade, academicYear string) error {
	skipped, err := models.RecomputeGradeGroups(models.DB, grade, academicYear)
	if err != nil {
		return err
	}

	for _, group := range skipped {
		log.Warn().
			Str("student", group.StudentID.String()).
			Str("academic-year", group.AcademicYear).
			Str("reason", group.Reason).
			Msg("balance recomputation skipped")
	}

	return nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			FeeStructures
// @Success		204
// @Router			/v1/fee-structures [options]
func OptionsFeeStructureList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			FeeStructures
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/fee-structures/{id} [options]
func OptionsFeeStructureDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.FeeStructure{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create fee structures
// @Description	Creates new fee structures. Only one fee structure can exist per grade and academic year.
// @Tags			FeeStructures
// @Produce		json
// @Success		201				{object}	FeeStructureCreateResponse
// @Failure		400				{object}	FeeStructureCreateResponse
// @Failure		500				{object}	FeeStructureCreateResponse
// @Param			feeStructures	body		[]FeeStructureEditable	true	"Fee structures"
// @Router			/v1/fee-structures [post]
func CreateFeeStructures(c *gin.Context) {
	var editables []FeeStructureEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FeeStructureCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	httpStatus := http.StatusCreated
	r := FeeStructureCreateResponse{}

	for _, editable := range editables {
		structure := editable.model()

		err = models.DB.Create(&structure).Error
		if err != nil {
			httpStatus = r.appendError(err, httpStatus)
			continue
		}

		// A new structure can give groups that previously had no
		// charge a valid one
		err = recomputeForStructure(structure.Grade, structure.AcademicYear)
		if err != nil {
			httpStatus = r.appendError(err, httpStatus)
			continue
		}

		data := newFeeStructure(c, structure)
		r.Data = append(r.Data, FeeStructureResponse{Data: &data})
	}

	c.JSON(httpStatus, r)
}

// @Summary		Get fee structures
// @Description	Returns a list of fee structures
// @Tags			FeeStructures
// @Produce		json
// @Success		200	{object}	FeeStructureListResponse
// @Failure		400	{object}	FeeStructureListResponse
// @Failure		500	{object}	FeeStructureListResponse
// @Router			/v1/fee-structures [get]
// @Param			grade			query	string	false	"Filter by grade"
// @Param			academicYear	query	string	false	"Filter by academic year"
// @Param			offset			query	uint	false	"The offset of the first fee structure returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of fee structures to return. Defaults to 50."
func GetFeeStructures(c *gin.Context) {
	var filter FeeStructureQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("academic_year ASC, grade ASC").
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 fee structures and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var structures []models.FeeStructure
	err := q.Find(&structures).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FeeStructureListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FeeStructureListResponse{
			Error: &e,
		})
		return
	}

	data := make([]FeeStructure, 0, len(structures))
	for _, structure := range structures {
		data = append(data, newFeeStructure(c, structure))
	}

	c.JSON(http.StatusOK, FeeStructureListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get fee structure
// @Description	Returns a specific fee structure
// @Tags			FeeStructures
// @Produce		json
// @Success		200	{object}	FeeStructureResponse
// @Failure		400	{object}	FeeStructureResponse
// @Failure		404	{object}	FeeStructureResponse
// @Failure		500	{object}	FeeStructureResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/fee-structures/{id} [get]
func GetFeeStructure(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FeeStructureResponse{
			Error: &s,
		})
		return
	}

	var structure models.FeeStructure
	err = models.DB.First(&structure, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FeeStructureResponse{
			Error: &s,
		})
		return
	}

	data := newFeeStructure(c, structure)
	c.JSON(http.StatusOK, FeeStructureResponse{Data: &data})
}

// @Summary		Update fee structure
// @Description	Update an existing fee structure. Only values to be updated need to be specified. Balances of affected payments are recomputed.
// @Tags			FeeStructures
// @Accept			json
// @Produce		json
// @Success		200				{object}	FeeStructureResponse
// @Failure		400				{object}	FeeStructureResponse
// @Failure		404				{object}	FeeStructureResponse
// @Failure		500				{object}	FeeStructureResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			feeStructure	body		FeeStructureEditable	true	"Fee structure"
// @Router			/v1/fee-structures/{id} [patch]
func UpdateFeeStructure(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FeeStructureResponse{
			Error: &s,
		})
		return
	}

	var structure models.FeeStructure
	err = models.DB.First(&structure, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FeeStructureResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, FeeStructureEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FeeStructureResponse{
			Error: &s,
		})
		return
	}

	var data FeeStructureEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FeeStructureResponse{
			Error: &s,
		})
		return
	}

	// The model hook verifies the grade on every save, so fill it in
	// from the existing resource when the request does not set it
	if data.Grade == "" {
		data.Grade = structure.Grade
	}

	// Balances under the old grade and year have to move too when the
	// structure is reassigned
	oldGrade, oldYear := structure.Grade, structure.AcademicYear

	err = models.DB.Model(&structure).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FeeStructureResponse{
			Error: &s,
		})
		return
	}

	err = recomputeForStructure(structure.Grade, structure.AcademicYear)
	if err == nil && (structure.Grade != oldGrade || structure.AcademicYear != oldYear) {
		err = recomputeForStructure(oldGrade, oldYear)
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FeeStructureResponse{
			Error: &s,
		})
		return
	}

	r := newFeeStructure(c, structure)
	c.JSON(http.StatusOK, FeeStructureResponse{Data: &r})
}

// @Summary		Delete fee structure
// @Description	Deletes a fee structure. Balances of payments that depended on it can no longer be recomputed until a new structure is created.
// @Tags			FeeStructures
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/fee-structures/{id} [delete]
func DeleteFeeStructure(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var structure models.FeeStructure
	err = models.DB.First(&structure, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Hard delete so that the unique index on (grade, academic year)
	// does not block creating a replacement structure
	err = models.DB.Unscoped().Delete(&structure).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Existing balances keep their last computed value, recomputation
	// for these groups now reports a missing fee structure
	log.Info().
		Str("grade", structure.Grade).
		Str("academic-year", structure.AcademicYear).
		Msg("fee structure deleted, balances for its groups are frozen")

	c.JSON(http.StatusNoContent, nil)
}
