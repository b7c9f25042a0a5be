package v1

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/shulebooks/backend/internal/httputil"
	"github.com/shulebooks/backend/internal/ledger"
	"github.com/shulebooks/backend/internal/models"
	"github.com/shulebooks/backend/internal/types"
)

// tracker returns the payroll tracker with the configured default
// actor.
func tracker() ledger.Tracker {
	actor, ok := os.LookupEnv("DEFAULT_ACTOR")
	if !ok {
		actor = "Admin"
	}

	return ledger.NewTracker(actor)
}

// PayrollQuery selects the payroll period for status and undo requests.
type PayrollQuery struct {
	Year  int             `form:"year" example:"2025"`  // Year of the period
	Month types.MonthName `form:"month" example:"June"` // Month of the period
}

// PayrollEditable is the request body for marking a period as paid.
// All fields except year and month are optional.
type PayrollEditable struct {
	Year   int             `json:"year" example:"2025"`                            // Year of the period
	Month  types.MonthName `json:"month" example:"June"`                           // Month of the period
	Amount decimal.Decimal `json:"amount" example:"32000"`                         // Amount paid. Defaults to the staff member's salary
	Notes  string          `json:"notes" example:"Includes June bonus" default:""` // Notes about the payment
	PaidBy string          `json:"paidBy" example:"Admin" default:""`              // Who recorded the payment. Defaults to the configured actor
}

type PayrollStatusData struct {
	StaffMemberID string               `json:"staffMemberId"`                                // ID of the staff member
	Year          int                  `json:"year" example:"2025"`                          // Year of the period
	Month         types.MonthName      `json:"month" example:"June"`                         // Month of the period
	Status        ledger.PayrollStatus `json:"status" example:"Paid"`                        // Status of the period
	Amount        decimal.Decimal      `json:"amount" example:"32000"`                       // Amount paid, zero for pending periods
	PaidDate      *time.Time           `json:"paidDate"`                                     // When the payment was made, null for pending periods
	Notes         string               `json:"notes" example:"Salary payment for June 2025"` // Notes, "Not yet paid" for pending periods
}

type PayrollStatusResponse struct {
	Data  *PayrollStatusData `json:"data"`  // Data for the payroll status
	Error *string            `json:"error"` // The error, if any occurred
}

type MonthlyPaymentResponse struct {
	Data  *MonthlyPaymentObject `json:"data"`  // Data for the monthly payment
	Error *string               `json:"error"` // The error, if any occurred
}

// OptionsPayroll returns the allowed HTTP methods
//
// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payroll
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/teachers/{id}/payroll [options]
// @Router			/v1/staff/{id}/payroll [options]
func OptionsPayroll(role models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := getStaffMember(c, role)
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		httputil.OptionsGetPostDelete(c)
	}
}

// GetPayrollStatus answers whether the staff member has been paid for
// the requested period
//
// @Summary		Get payroll status
// @Description	Returns the payroll status of a staff member for one period
// @Tags			Payroll
// @Produce		json
// @Success		200		{object}	PayrollStatusResponse
// @Failure		400		{object}	PayrollStatusResponse
// @Failure		404		{object}	PayrollStatusResponse
// @Failure		500		{object}	PayrollStatusResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			year	query		int		true	"Year of the period"
// @Param			month	query		string	true	"Month of the period, e.g. June"
// @Router			/v1/teachers/{id}/payroll [get]
// @Router			/v1/staff/{id}/payroll [get]
func GetPayrollStatus(role models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		member, err := getStaffMember(c, role)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), PayrollStatusResponse{
				Error: &s,
			})
			return
		}

		var query PayrollQuery
		_ = c.Bind(&query)

		if query.Year == 0 || query.Month == "" {
			s := errPeriodParameters.Error()
			c.JSON(http.StatusBadRequest, PayrollStatusResponse{
				Error: &s,
			})
			return
		}

		periodStatus, err := member.PayrollStatus(models.DB, tracker(), query.Year, query.Month)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), PayrollStatusResponse{
				Error: &s,
			})
			return
		}

		c.JSON(http.StatusOK, PayrollStatusResponse{
			Data: &PayrollStatusData{
				StaffMemberID: member.ID.String(),
				Year:          query.Year,
				Month:         query.Month,
				Status:        periodStatus.Status,
				Amount:        periodStatus.Amount,
				PaidDate:      periodStatus.PaidDate,
				Notes:         periodStatus.Notes,
			},
		})
	}
}

// MarkPaid records a salary payment for a period. Marking an already
// paid period replaces the existing record.
//
// @Summary		Mark period as paid
// @Description	Records a salary payment for one period. An existing record for the period is replaced.
// @Tags			Payroll
// @Accept			json
// @Produce		json
// @Success		201		{object}	MonthlyPaymentResponse
// @Failure		400		{object}	MonthlyPaymentResponse
// @Failure		404		{object}	MonthlyPaymentResponse
// @Failure		500		{object}	MonthlyPaymentResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		PayrollEditable	true	"Payment"
// @Router			/v1/teachers/{id}/payroll [post]
// @Router			/v1/staff/{id}/payroll [post]
func MarkPaid(role models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		member, err := getStaffMember(c, role)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), MonthlyPaymentResponse{
				Error: &s,
			})
			return
		}

		var editable PayrollEditable
		err = httputil.BindData(c, &editable)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), MonthlyPaymentResponse{
				Error: &s,
			})
			return
		}

		record, err := member.MarkPaid(models.DB, tracker(), editable.Year, editable.Month, ledger.MarkPaidOptions{
			Amount: editable.Amount,
			Notes:  editable.Notes,
			PaidBy: editable.PaidBy,
		})
		if err != nil {
			s := err.Error()
			c.JSON(status(err), MonthlyPaymentResponse{
				Error: &s,
			})
			return
		}

		data := newMonthlyPaymentObject(record)
		c.JSON(http.StatusCreated, MonthlyPaymentResponse{Data: &data})
	}
}

// UndoPayment removes the payment record for a period. Undoing a period
// without a record is a no-op.
//
// @Summary		Undo payment
// @Description	Removes the salary payment record for one period. Removing a period without a record is a no-op.
// @Tags			Payroll
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			year	query		int		true	"Year of the period"
// @Param			month	query		string	true	"Month of the period, e.g. June"
// @Router			/v1/teachers/{id}/payroll [delete]
// @Router			/v1/staff/{id}/payroll [delete]
func UndoPayment(role models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		member, err := getStaffMember(c, role)
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		var query PayrollQuery
		_ = c.Bind(&query)

		if query.Year == 0 || query.Month == "" {
			c.JSON(http.StatusBadRequest, httpError{
				Error: errPeriodParameters.Error(),
			})
			return
		}

		err = member.UndoPayment(models.DB, tracker(), query.Year, query.Month)
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		c.JSON(http.StatusNoContent, nil)
	}
}
