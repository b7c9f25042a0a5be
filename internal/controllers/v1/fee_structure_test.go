package v1_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	v1 "github.com/shulebooks/backend/internal/controllers/v1"
	"github.com/shulebooks/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFeeStructure(t *testing.T, c v1.FeeStructureEditable, expectedStatus ...int) v1.FeeStructureResponse {
	if c.Grade == "" {
		c.Grade = "Grade 4"
	}

	if c.AcademicYear == "" {
		c.AcademicYear = "2025"
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.FeeStructureEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/fee-structures", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.FeeStructureCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.FeeStructureResponse{}
}

func (suite *TestSuiteStandard) TestFeeStructuresCreate() {
	structure := createTestFeeStructure(suite.T(), v1.FeeStructureEditable{
		Term1Amount: decimal.NewFromInt(9500),
	})

	require.NotNil(suite.T(), structure.Data)
	assert.Equal(suite.T(), "Grade 4", structure.Data.Grade)
	assert.True(suite.T(), structure.Data.Term1Amount.Equal(decimal.NewFromInt(9500)))
}

func (suite *TestSuiteStandard) TestFeeStructuresCreateDuplicate() {
	_ = createTestFeeStructure(suite.T(), v1.FeeStructureEditable{})
	_ = createTestFeeStructure(suite.T(), v1.FeeStructureEditable{}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestFeeStructuresCreateNegativeAmount() {
	_ = createTestFeeStructure(suite.T(), v1.FeeStructureEditable{
		Term1Amount: decimal.NewFromInt(-100),
	}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestFeeStructuresGetSingle() {
	structure := createTestFeeStructure(suite.T(), v1.FeeStructureEditable{})

	r := test.Request(suite.T(), http.MethodGet, structure.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestFeeStructuresGetFilter() {
	_ = createTestFeeStructure(suite.T(), v1.FeeStructureEditable{Grade: "Grade 4", AcademicYear: "2025"})
	_ = createTestFeeStructure(suite.T(), v1.FeeStructureEditable{Grade: "Grade 5", AcademicYear: "2025"})
	_ = createTestFeeStructure(suite.T(), v1.FeeStructureEditable{Grade: "Grade 4", AcademicYear: "2026"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Grade", "grade=Grade%204", 2},
		{"Academic year", "academicYear=2025", 2},
		{"Grade and year", "grade=Grade%204&academicYear=2026", 1},
		{"No match", "grade=Grade%209", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/fee-structures?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.FeeStructureListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestFeeStructuresUpdateRecomputes() {
	student := createTestStudent(suite.T(), v1.StudentEditable{Grade: "Grade 4"})
	structure := createTestFeeStructure(suite.T(), v1.FeeStructureEditable{
		Term1Amount: decimal.NewFromInt(5000),
	})

	payment := createTestPayment(suite.T(), v1.PaymentEditable{
		StudentID:  student.Data.ID,
		AmountPaid: decimal.NewFromInt(1000),
	})
	assert.True(suite.T(), payment.Data.Balance.Equal(decimal.NewFromInt(4000)), "balance is %s", payment.Data.Balance)

	// Raising the charge moves the stored balances
	r := test.Request(suite.T(), http.MethodPatch, structure.Data.Links.Self, map[string]any{
		"term1Amount": "9000",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, payment.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var reloaded v1.PaymentResponse
	test.DecodeResponse(suite.T(), &r, &reloaded)
	assert.True(suite.T(), reloaded.Data.Balance.Equal(decimal.NewFromInt(8000)), "balance is %s", reloaded.Data.Balance)
}

func (suite *TestSuiteStandard) TestFeeStructuresDelete() {
	structure := createTestFeeStructure(suite.T(), v1.FeeStructureEditable{})

	r := test.Request(suite.T(), http.MethodDelete, structure.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, structure.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// A deleted fee structure must free up its (grade, academic year)
// pair, so a replacement structure recomputes the frozen balances.
func (suite *TestSuiteStandard) TestFeeStructuresDeleteThenRecreate() {
	student := createTestStudent(suite.T(), v1.StudentEditable{})
	structure := createTestFeeStructure(suite.T(), v1.FeeStructureEditable{
		Term1Amount: decimal.NewFromInt(5000),
	})

	payment := createTestPayment(suite.T(), v1.PaymentEditable{
		StudentID:  student.Data.ID,
		AmountPaid: decimal.NewFromInt(1000),
	})

	r := test.Request(suite.T(), http.MethodDelete, structure.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	_ = createTestFeeStructure(suite.T(), v1.FeeStructureEditable{
		Term1Amount: decimal.NewFromInt(7500),
	})

	r = test.Request(suite.T(), http.MethodGet, payment.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var reloaded v1.PaymentResponse
	test.DecodeResponse(suite.T(), &r, &reloaded)
	assert.True(suite.T(), reloaded.Data.Balance.Equal(decimal.NewFromInt(6500)), "balance is %s", reloaded.Data.Balance)
}

// Balances stay frozen at their last computed value when the fee
// structure is deleted.
func (suite *TestSuiteStandard) TestFeeStructuresDeleteFreezesBalances() {
	student := createTestStudent(suite.T(), v1.StudentEditable{})
	structure := createTestFeeStructure(suite.T(), v1.FeeStructureEditable{
		Term1Amount: decimal.NewFromInt(5000),
	})

	payment := createTestPayment(suite.T(), v1.PaymentEditable{
		StudentID:  student.Data.ID,
		AmountPaid: decimal.NewFromInt(1000),
	})

	r := test.Request(suite.T(), http.MethodDelete, structure.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, payment.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var reloaded v1.PaymentResponse
	test.DecodeResponse(suite.T(), &r, &reloaded)
	assert.True(suite.T(), reloaded.Data.Balance.Equal(decimal.NewFromInt(4000)), "balance is %s", reloaded.Data.Balance)
}

func (suite *TestSuiteStandard) TestFeeStructuresNotFound() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/fee-structures/"+uuid.NewString(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
