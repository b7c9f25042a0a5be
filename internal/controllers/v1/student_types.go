package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/shulebooks/backend/internal/models"
	"github.com/shulebooks/backend/internal/types"
)

// StudentEditable represents all user configurable parameters
type StudentEditable struct {
	AdmissionNumber string `json:"admissionNumber" example:"ADM-0231" default:""`   // Unique admission number of the student
	FirstName       string `json:"firstName" example:"Wanjiru" default:""`          // First name of the student
	LastName        string `json:"lastName" example:"Kamau" default:""`             // Last name of the student
	Grade           string `json:"grade" example:"Grade 4" default:""`              // Grade the student is enrolled in
	GuardianName    string `json:"guardianName" example:"Grace Kamau" default:""`   // Name of the guardian
	GuardianPhone   string `json:"guardianPhone" example:"+254700000000" default:""` // Phone number of the guardian
	Archived        bool   `json:"archived" example:"false" default:"false"`        // Has the student left the school?
}

func (editable StudentEditable) model() models.Student {
	return models.Student{
		AdmissionNumber: editable.AdmissionNumber,
		FirstName:       editable.FirstName,
		LastName:        editable.LastName,
		Grade:           editable.Grade,
		GuardianName:    editable.GuardianName,
		GuardianPhone:   editable.GuardianPhone,
		Archived:        editable.Archived,
	}
}

type StudentLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/students/d1798bab-5b5c-4056-8a3a-ad69d6bc6e69"`              // The student itself
	Payments string `json:"payments" example:"https://example.com/api/v1/payments?student=d1798bab-5b5c-4056-8a3a-ad69d6bc6e69"` // Fee payments made by this student
	Balance  string `json:"balance" example:"https://example.com/api/v1/students/d1798bab-5b5c-4056-8a3a-ad69d6bc6e69/balance"`  // Outstanding balance for a term
}

type Student struct {
	models.DefaultModel
	StudentEditable
	Links StudentLinks `json:"links"`
}

func newStudent(c *gin.Context, model models.Student) Student {
	url := c.GetString(string(models.DBContextURL))

	return Student{
		DefaultModel: model.DefaultModel,
		StudentEditable: StudentEditable{
			AdmissionNumber: model.AdmissionNumber,
			FirstName:       model.FirstName,
			LastName:        model.LastName,
			Grade:           model.Grade,
			GuardianName:    model.GuardianName,
			GuardianPhone:   model.GuardianPhone,
			Archived:        model.Archived,
		},
		Links: StudentLinks{
			Self:     fmt.Sprintf("%s/v1/students/%s", url, model.ID),
			Payments: fmt.Sprintf("%s/v1/payments?student=%s", url, model.ID),
			Balance:  fmt.Sprintf("%s/v1/students/%s/balance", url, model.ID),
		},
	}
}

type StudentListResponse struct {
	Data       []Student   `json:"data"`                                                          // List of Students
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type StudentCreateResponse struct {
	Data  []StudentResponse `json:"data"`                                                          // List of the created Students or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (s *StudentCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, StudentResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type StudentResponse struct {
	Data  *Student `json:"data"`                                                          // Data for the Student
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type StudentQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name, glob patterns like "Wan*" are supported
	Grade    string `form:"grade"`                      // By grade
	Archived bool   `form:"archived"`                   // Has the student left the school?
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Student returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Students to return. Defaults to 50.
}

func (f StudentQueryFilter) model() models.Student {
	return models.Student{
		Grade:    f.Grade,
		Archived: f.Archived,
	}
}

// BalanceQuery selects the fee period an outstanding balance is
// requested for.
type BalanceQuery struct {
	Term         types.Term `form:"term" example:"2"`           // Term of the academic year
	AcademicYear string     `form:"academicYear" example:"2025"` // Academic year
}

type BalanceData struct {
	StudentID    string          `json:"studentId"`    // ID of the student
	Term         types.Term      `json:"term"`         // Term of the academic year
	AcademicYear string          `json:"academicYear"` // Academic year
	TermCharge   decimal.Decimal `json:"termCharge"`   // The full charge for the term
	Outstanding  decimal.Decimal `json:"outstanding"`  // Outstanding amount, negative when overpaid
	Currency     string          `json:"currency" example:"KSh"` // Display currency
}

type BalanceResponse struct {
	Data  *BalanceData `json:"data"`  // Data for the balance
	Error *string      `json:"error"` // The error, if any occurred
}
