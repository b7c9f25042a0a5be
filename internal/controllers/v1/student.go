package v1

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
	"github.com/shulebooks/backend/internal/httputil"
	"github.com/shulebooks/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterStudentRoutes registers the routes for students with
// the RouterGroup that is passed.
func RegisterStudentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsStudentList)
		r.GET("", GetStudents)
		r.POST("", CreateStudents)
	}

	// Student with ID
	{
		r.OPTIONS("/:id", OptionsStudentDetail)
		r.GET("/:id", GetStudent)
		r.GET("/:id/balance", GetStudentBalance)
		r.PATCH("/:id", UpdateStudent)
		r.DELETE("/:id", DeleteStudent)
	}
}

// currency returns the display currency for money amounts.
func currency() string {
	if c, ok := os.LookupEnv("CURRENCY"); ok {
		return c
	}

	return "KSh"
}

// defaultAcademicYear returns the academic year used when a request
// does not specify one.
func defaultAcademicYear() string {
	if y, ok := os.LookupEnv("DEFAULT_ACADEMIC_YEAR"); ok {
		return y
	}

	return strconv.Itoa(time.Now().Year())
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Students
// @Success		204
// @Router			/v1/students [options]
func OptionsStudentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Students
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/students/{id} [options]
func OptionsStudentDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Student{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create students
// @Description	Creates new students
// @Tags			Students
// @Produce		json
// @Success		201			{object}	StudentCreateResponse
// @Failure		400			{object}	StudentCreateResponse
// @Failure		500			{object}	StudentCreateResponse
// @Param			students	body		[]StudentEditable	true	"Students"
// @Router			/v1/students [post]
func CreateStudents(c *gin.Context) {
	var editables []StudentEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StudentCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := StudentCreateResponse{}

	for _, editable := range editables {
		student := editable.model()

		err = models.DB.Create(&student).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newStudent(c, student)
		r.Data = append(r.Data, StudentResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get students
// @Description	Returns a list of students
// @Tags			Students
// @Produce		json
// @Success		200	{object}	StudentListResponse
// @Failure		400	{object}	StudentListResponse
// @Failure		500	{object}	StudentListResponse
// @Router			/v1/students [get]
// @Param			name		query	string	false	"Filter by name, glob patterns are supported"
// @Param			grade		query	string	false	"Filter by grade"
// @Param			archived	query	bool	false	"Has the student left the school?"
// @Param			offset		query	uint	false	"The offset of the first Student returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Students to return. Defaults to 50."
func GetStudents(c *gin.Context) {
	var filter StudentQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	var students []models.Student
	err := models.DB.
		Order("admission_number ASC").
		Where(&filterModel, queryFields...).
		Find(&students).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentListResponse{
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

		matched := make([]models.Student, 0, len(students))
		for _, student := range students {
			name := strings.ToLower(student.FirstName + " " + student.LastName)
			if glob.Glob(pattern, name) {
				matched = append(matched, student)
			}
		}
		students = matched
	}

	total := int64(len(students))

	// Set the offset. Does not need checking since the default is 0
	if int(filter.Offset) < len(students) {
		students = students[filter.Offset:]
	} else {
		students = students[:0]
	}

	// Default to 50 Students and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	if limit >= 0 && limit < len(students) {
		students = students[:limit]
	}

	data := make([]Student, 0, len(students))
	for _, student := range students {
		data = append(data, newStudent(c, student))
	}

	c.JSON(http.StatusOK, StudentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get student
// @Description	Returns a specific student
// @Tags			Students
// @Produce		json
// @Success		200	{object}	StudentResponse
// @Failure		400	{object}	StudentResponse
// @Failure		404	{object}	StudentResponse
// @Failure		500	{object}	StudentResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/students/{id} [get]
func GetStudent(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentResponse{
			Error: &s,
		})
		return
	}

	var student models.Student
	err = models.DB.First(&student, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentResponse{
			Error: &s,
		})
		return
	}

	data := newStudent(c, student)
	c.JSON(http.StatusOK, StudentResponse{Data: &data})
}

// @Summary		Get outstanding balance
// @Description	Returns the outstanding fee balance of a student for one term
// @Tags			Students
// @Produce		json
// @Success		200				{object}	BalanceResponse
// @Failure		400				{object}	BalanceResponse
// @Failure		404				{object}	BalanceResponse
// @Failure		500				{object}	BalanceResponse
// @Param			id				path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			term			query		int		true	"Term of the academic year"
// @Param			academicYear	query		string	false	"Academic year, defaults to the configured year"
// @Router			/v1/students/{id}/balance [get]
func GetStudentBalance(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &s,
		})
		return
	}

	var query BalanceQuery
	_ = c.Bind(&query)

	if query.AcademicYear == "" {
		query.AcademicYear = defaultAcademicYear()
	}

	var student models.Student
	err = models.DB.First(&student, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &s,
		})
		return
	}

	charge, outstanding, err := models.OutstandingBalance(models.DB, student, query.Term, query.AcademicYear)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		Data: &BalanceData{
			StudentID:    student.ID.String(),
			Term:         query.Term,
			AcademicYear: query.AcademicYear,
			TermCharge:   charge,
			Outstanding:  outstanding,
			Currency:     currency(),
		},
	})
}

// @Summary		Update student
// @Description	Update an existing student. Only values to be updated need to be specified.
// @Tags			Students
// @Accept			json
// @Produce		json
// @Success		200		{object}	StudentResponse
// @Failure		400		{object}	StudentResponse
// @Failure		404		{object}	StudentResponse
// @Failure		500		{object}	StudentResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			student	body		StudentEditable	true	"Student"
// @Router			/v1/students/{id} [patch]
func UpdateStudent(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentResponse{
			Error: &s,
		})
		return
	}

	var student models.Student
	err = models.DB.First(&student, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, StudentEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentResponse{
			Error: &s,
		})
		return
	}

	var data StudentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentResponse{
			Error: &s,
		})
		return
	}

	// The model hook verifies the grade on every save, so fill it in
	// from the existing resource when the request does not set it
	if data.Grade == "" {
		data.Grade = student.Grade
	}

	gradeChanged := containsField(updateFields, "Grade") && data.Grade != student.Grade

	err = models.DB.Model(&student).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentResponse{
			Error: &s,
		})
		return
	}

	// The grade determines which fee structure applies, so a grade
	// change moves every payment group of the student to a new charge
	if gradeChanged {
		skipped, err := models.RecomputeStudentGroups(models.DB, student.ID)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), StudentResponse{
				Error: &s,
			})
			return
		}

		for _, group := range skipped {
			log.Warn().
				Str("student", group.StudentID.String()).
				Str("academic-year", group.AcademicYear).
				Str("reason", group.Reason).
				Msg("balance recomputation skipped")
		}
	}

	r := newStudent(c, student)
	c.JSON(http.StatusOK, StudentResponse{Data: &r})
}

// @Summary		Delete student
// @Description	Deletes a student
// @Tags			Students
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/students/{id} [delete]
func DeleteStudent(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var student models.Student
	err = models.DB.First(&student, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&student).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
