package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	v1 "github.com/shulebooks/backend/internal/controllers/v1"
	"github.com/shulebooks/backend/internal/ledger"
	"github.com/shulebooks/backend/internal/types"
	"github.com/shulebooks/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestPayrollStatusPending() {
	teacher := createTestTeacher(suite.T(), v1.StaffMemberEditable{})

	r := test.Request(suite.T(), http.MethodGet, teacher.Data.Links.Payroll+"?year=2025&month=June", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PayrollStatusResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), ledger.StatusPending, response.Data.Status)
	assert.True(suite.T(), response.Data.Amount.IsZero())
	assert.Nil(suite.T(), response.Data.PaidDate)
	assert.Equal(suite.T(), "Not yet paid", response.Data.Notes)
}

func (suite *TestSuiteStandard) TestPayrollStatusMissingParameters() {
	teacher := createTestTeacher(suite.T(), v1.StaffMemberEditable{})

	tests := []string{
		"",
		"?year=2025",
		"?month=June",
	}

	for _, tt := range tests {
		suite.T().Run(fmt.Sprintf("Query %q", tt), func(t *testing.T) {
			r := test.Request(t, http.MethodGet, teacher.Data.Links.Payroll+tt, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestPayrollMarkPaidDefaults() {
	teacher := createTestTeacher(suite.T(), v1.StaffMemberEditable{
		Salary: decimal.NewFromInt(32000),
	})

	r := test.Request(suite.T(), http.MethodPost, teacher.Data.Links.Payroll, v1.PayrollEditable{
		Year:  2025,
		Month: types.June,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.MonthlyPaymentResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromInt(32000)), "amount is %s", response.Data.Amount)
	assert.Equal(suite.T(), "Admin", response.Data.PaidBy)
	assert.Equal(suite.T(), "Salary payment for June 2025", response.Data.Notes)
	assert.Equal(suite.T(), ledger.StatusPaid, response.Data.Status)

	// The status follows
	r = test.Request(suite.T(), http.MethodGet, teacher.Data.Links.Payroll+"?year=2025&month=June", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var status v1.PayrollStatusResponse
	test.DecodeResponse(suite.T(), &r, &status)
	assert.Equal(suite.T(), ledger.StatusPaid, status.Data.Status)
	assert.NotNil(suite.T(), status.Data.PaidDate)
}

// Marking an already paid period replaces the record instead of failing
// or duplicating it.
func (suite *TestSuiteStandard) TestPayrollMarkPaidReplaces() {
	teacher := createTestTeacher(suite.T(), v1.StaffMemberEditable{
		Salary: decimal.NewFromInt(32000),
	})

	r := test.Request(suite.T(), http.MethodPost, teacher.Data.Links.Payroll, v1.PayrollEditable{
		Year:  2025,
		Month: types.June,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodPost, teacher.Data.Links.Payroll, v1.PayrollEditable{
		Year:   2025,
		Month:  types.June,
		Amount: decimal.NewFromInt(16000),
		Notes:  "Half salary",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.MonthlyPaymentResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromInt(16000)), "amount is %s", response.Data.Amount)
	assert.Equal(suite.T(), "Half salary", response.Data.Notes)
}

func (suite *TestSuiteStandard) TestPayrollMarkPaidInvalidPeriod() {
	teacher := createTestTeacher(suite.T(), v1.StaffMemberEditable{})

	tests := []struct {
		name     string
		editable v1.PayrollEditable
	}{
		{"Invalid month", v1.PayrollEditable{Year: 2025, Month: "Juneuary"}},
		{"Missing year", v1.PayrollEditable{Month: types.June}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, teacher.Data.Links.Payroll, tt.editable)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

// A negative amount must be rejected, not silently replaced with the
// salary.
func (suite *TestSuiteStandard) TestPayrollMarkPaidNegativeAmount() {
	teacher := createTestTeacher(suite.T(), v1.StaffMemberEditable{
		Salary: decimal.NewFromInt(32000),
	})

	r := test.Request(suite.T(), http.MethodPost, teacher.Data.Links.Payroll, v1.PayrollEditable{
		Year:   2025,
		Month:  types.June,
		Amount: decimal.NewFromInt(-100),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	// The period stays pending
	r = test.Request(suite.T(), http.MethodGet, teacher.Data.Links.Payroll+"?year=2025&month=June", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var status v1.PayrollStatusResponse
	test.DecodeResponse(suite.T(), &r, &status)
	assert.Equal(suite.T(), ledger.StatusPending, status.Data.Status)
}

func (suite *TestSuiteStandard) TestPayrollUndo() {
	teacher := createTestTeacher(suite.T(), v1.StaffMemberEditable{})

	r := test.Request(suite.T(), http.MethodPost, teacher.Data.Links.Payroll, v1.PayrollEditable{
		Year:  2025,
		Month: types.June,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodDelete, teacher.Data.Links.Payroll+"?year=2025&month=June", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, teacher.Data.Links.Payroll+"?year=2025&month=June", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var status v1.PayrollStatusResponse
	test.DecodeResponse(suite.T(), &r, &status)
	assert.Equal(suite.T(), ledger.StatusPending, status.Data.Status)
}

// Undoing a period without a record is a no-op.
func (suite *TestSuiteStandard) TestPayrollUndoNoRecord() {
	teacher := createTestTeacher(suite.T(), v1.StaffMemberEditable{})

	r := test.Request(suite.T(), http.MethodDelete, teacher.Data.Links.Payroll+"?year=2025&month=June", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

// Payroll also works on the support staff endpoint.
func (suite *TestSuiteStandard) TestPayrollSupportStaff() {
	staff := createTestSupportStaff(suite.T(), v1.StaffMemberEditable{
		Salary: decimal.NewFromInt(18000),
	})

	r := test.Request(suite.T(), http.MethodPost, staff.Data.Links.Payroll, v1.PayrollEditable{
		Year:  2025,
		Month: types.May,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	// The latest payment shows up on the staff member resource
	r = test.Request(suite.T(), http.MethodGet, staff.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.StaffMemberResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data.LatestPayment)
	assert.Equal(suite.T(), types.May, response.Data.LatestPayment.Month)
}

func (suite *TestSuiteStandard) TestPayrollOptions() {
	teacher := createTestTeacher(suite.T(), v1.StaffMemberEditable{})

	r := test.Request(suite.T(), http.MethodOptions, teacher.Data.Links.Payroll, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "GET, POST, DELETE", r.Header().Get("allow"))
}
