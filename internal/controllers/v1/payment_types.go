package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shulebooks/backend/internal/models"
	"github.com/shulebooks/backend/internal/types"
	sb_uuid "github.com/shulebooks/backend/internal/uuid"
)

// PaymentEditable represents all user configurable parameters
type PaymentEditable struct {
	StudentID    uuid.UUID       `json:"studentId" example:"d1798bab-5b5c-4056-8a3a-ad69d6bc6e69"` // ID of the student the payment is for
	Term         types.Term      `json:"term" example:"2"`                                         // Term of the academic year
	AcademicYear string          `json:"academicYear" example:"2025" default:""`                   // Academic year the payment belongs to
	AmountPaid   decimal.Decimal `json:"amountPaid" example:"2500"`                                // Amount that was paid
	DatePaid     time.Time       `json:"datePaid" example:"2025-02-12T00:00:00Z"`                  // When the payment was made. Defaults to now
}

func (editable PaymentEditable) model() models.Payment {
	return models.Payment{
		StudentID:    editable.StudentID,
		Term:         editable.Term,
		AcademicYear: editable.AcademicYear,
		AmountPaid:   editable.AmountPaid,
		DatePaid:     editable.DatePaid,
	}
}

type PaymentLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/payments/6f9c42f5-9b1e-4b12-9f22-8adfbf4b7c2a"`        // The payment itself
	Student string `json:"student" example:"https://example.com/api/v1/students/d1798bab-5b5c-4056-8a3a-ad69d6bc6e69"` // The student the payment is for
}

type PaymentObject struct {
	models.DefaultModel
	PaymentEditable
	Balance decimal.Decimal `json:"balance" example:"7000"` // Outstanding amount after this payment, negative when overpaid
	Links   PaymentLinks    `json:"links"`
}

func newPayment(c *gin.Context, model models.Payment) PaymentObject {
	url := c.GetString(string(models.DBContextURL))

	return PaymentObject{
		DefaultModel: model.DefaultModel,
		PaymentEditable: PaymentEditable{
			StudentID:    model.StudentID,
			Term:         model.Term,
			AcademicYear: model.AcademicYear,
			AmountPaid:   model.AmountPaid,
			DatePaid:     model.DatePaid,
		},
		Balance: model.Balance,
		Links: PaymentLinks{
			Self:    fmt.Sprintf("%s/v1/payments/%s", url, model.ID),
			Student: fmt.Sprintf("%s/v1/students/%s", url, model.StudentID),
		},
	}
}

type PaymentListResponse struct {
	Data       []PaymentObject `json:"data"`                                                          // List of payments
	Error      *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type PaymentCreateResponse struct {
	Data  []PaymentResponse `json:"data"`                                                          // List of the created payments or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (p *PaymentCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	p.Data = append(p.Data, PaymentResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PaymentResponse struct {
	Data  *PaymentObject `json:"data"`                                                          // Data for the payment
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PaymentQueryFilter struct {
	StudentID    sb_uuid.UUID `form:"student"`                    // By ID of the student
	Term         types.Term   `form:"term"`                       // By term
	AcademicYear string       `form:"academicYear"`               // By academic year
	Offset       uint         `form:"offset" filterField:"false"` // The offset of the first payment returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`  // Maximum number of payments to return. Defaults to 50.
}

func (f PaymentQueryFilter) model() models.Payment {
	return models.Payment{
		StudentID:    f.StudentID.UUID,
		Term:         f.Term,
		AcademicYear: f.AcademicYear,
	}
}
