package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/shulebooks/backend/internal/controllers/v1"
	"github.com/shulebooks/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	student := createTestStudent(suite.T(), v1.StudentEditable{})
	_ = createTestFeeStructure(suite.T(), v1.FeeStructureEditable{})
	_ = createTestPayment(suite.T(), v1.PaymentEditable{StudentID: student.Data.ID})
	_ = createTestTeacher(suite.T(), v1.StaffMemberEditable{})
	_ = createTestSupportStaff(suite.T(), v1.StaffMemberEditable{})

	tests := []string{
		"http://example.com/v1/students",
		"http://example.com/v1/teachers",
		"http://example.com/v1/staff",
		"http://example.com/v1/fee-structures",
		"http://example.com/v1/payments",
	}

	// Delete
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Verify
	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodGet, tt, "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}

			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, 0, "There are resources left for type %s", tt)
		})
	}
}

// The admin user survives a cleanup so that logging in stays possible.
func (suite *TestSuiteStandard) TestCleanupKeepsUser() {
	suite.createTestUser("admin@example.com", "hunter2")

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/login", v1.LoginEditable{
		Email:    "admin@example.com",
		Password: "hunter2",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"Invalid path", "confirm=2"},
		{"Confirmation wrong", "confirm=invalid-confirmation"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1?%s", tt.path), "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
