package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/shulebooks/backend/internal/ledger"
	"github.com/shulebooks/backend/internal/models"
	"github.com/shulebooks/backend/internal/types"
	"gorm.io/gorm"
)

// StaffMemberEditable represents all user configurable parameters.
// The role is fixed by the endpoint the staff member is created on.
type StaffMemberEditable struct {
	FirstName        string                  `json:"firstName" example:"Peter" default:""`           // First name of the staff member
	LastName         string                  `json:"lastName" example:"Otieno" default:""`           // Last name of the staff member
	Email            string                  `json:"email" example:"p.otieno@example.com" default:""` // Email address
	Phone            string                  `json:"phone" example:"+254711000000" default:""`       // Phone number
	Salary           decimal.Decimal         `json:"salary" example:"32000"`                         // Salary per payment period
	PaymentFrequency models.PaymentFrequency `json:"paymentFrequency" example:"Monthly" default:"Monthly"` // How often the salary is due
	Active           bool                    `json:"active" example:"true" default:"true"`           // Is the staff member currently employed?
}

func (editable StaffMemberEditable) model(role models.StaffRole) models.StaffMember {
	return models.StaffMember{
		FirstName:        editable.FirstName,
		LastName:         editable.LastName,
		Email:            editable.Email,
		Phone:            editable.Phone,
		Role:             role,
		Salary:           editable.Salary,
		PaymentFrequency: editable.PaymentFrequency,
		Active:           editable.Active,
	}
}

type StaffMemberLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/teachers/40a1bea9-d0f9-4ac8-b982-4689f33cd683"`        // The staff member itself
	Payroll string `json:"payroll" example:"https://example.com/api/v1/teachers/40a1bea9-d0f9-4ac8-b982-4689f33cd683/payroll"` // Payroll status and payments for this staff member
}

type StaffMember struct {
	models.DefaultModel
	StaffMemberEditable
	Role  models.StaffRole `json:"role" example:"teacher"` // Role of the staff member
	Links StaffMemberLinks `json:"links"`

	// These fields are computed
	LatestPayment *MonthlyPaymentObject `json:"latestPayment"` // The most recent salary payment, if any
}

func newStaffMember(c *gin.Context, db *gorm.DB, model models.StaffMember) (StaffMember, error) {
	url := c.GetString(string(models.DBContextURL))
	path := rolePath(model.Role)

	member := StaffMember{
		DefaultModel: model.DefaultModel,
		StaffMemberEditable: StaffMemberEditable{
			FirstName:        model.FirstName,
			LastName:         model.LastName,
			Email:            model.Email,
			Phone:            model.Phone,
			Salary:           model.Salary,
			PaymentFrequency: model.PaymentFrequency,
			Active:           model.Active,
		},
		Role: model.Role,
		Links: StaffMemberLinks{
			Self:    fmt.Sprintf("%s/v1/%s/%s", url, path, model.ID),
			Payroll: fmt.Sprintf("%s/v1/%s/%s/payroll", url, path, model.ID),
		},
	}

	latest, ok, err := model.LatestPayment(db)
	if err != nil {
		return StaffMember{}, err
	}

	if ok {
		payment := newMonthlyPaymentObject(latest)
		member.LatestPayment = &payment
	}

	return member, nil
}

// rolePath returns the URL path segment for the staff role.
func rolePath(role models.StaffRole) string {
	if role == models.RoleTeacher {
		return "teachers"
	}

	return "staff"
}

type StaffMemberListResponse struct {
	Data       []StaffMember `json:"data"`                                                          // List of staff members
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type StaffMemberCreateResponse struct {
	Data  []StaffMemberResponse `json:"data"`                                                          // List of the created staff members or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (s *StaffMemberCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, StaffMemberResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type StaffMemberResponse struct {
	Data  *StaffMember `json:"data"`                                                          // Data for the staff member
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type StaffMemberQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name, glob patterns like "Pet*" are supported
	Active bool   `form:"active"`                     // Is the staff member currently employed?
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first staff member returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of staff members to return. Defaults to 50.
}

func (f StaffMemberQueryFilter) model(role models.StaffRole) models.StaffMember {
	return models.StaffMember{
		Role:   role,
		Active: f.Active,
	}
}

// MonthlyPaymentObject is the API representation of a salary payment.
type MonthlyPaymentObject struct {
	StaffMemberID string               `json:"staffMemberId"`                 // ID of the staff member
	Year          int                  `json:"year" example:"2025"`           // Year of the period
	Month         types.MonthName      `json:"month" example:"June"`          // Month of the period
	Amount        decimal.Decimal      `json:"amount" example:"32000"`        // Amount that was paid
	PaidDate      time.Time            `json:"paidDate"`                      // When the payment was made
	PaidBy        string               `json:"paidBy" example:"Admin"`        // Who recorded the payment
	Notes         string               `json:"notes" example:"Salary payment for June 2025"` // Notes about the payment
	Status        ledger.PayrollStatus `json:"status" example:"Paid"`         // Status of the period
}

func newMonthlyPaymentObject(model models.MonthlyPayment) MonthlyPaymentObject {
	return MonthlyPaymentObject{
		StaffMemberID: model.StaffMemberID.String(),
		Year:          model.Year,
		Month:         model.Month,
		Amount:        model.Amount,
		PaidDate:      model.PaidDate,
		PaidBy:        model.PaidBy,
		Notes:         model.Notes,
		Status:        model.Status,
	}
}
