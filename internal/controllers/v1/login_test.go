package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/shulebooks/backend/internal/controllers/v1"
	"github.com/shulebooks/backend/internal/models"
	"github.com/shulebooks/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createTestUser(email, password string) {
	require.Nil(suite.T(), models.EnsureAdmin(models.DB, email, "Admin", password))
}

func (suite *TestSuiteStandard) TestLogin() {
	suite.createTestUser("admin@example.com", "hunter2")

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/login", v1.LoginEditable{
		Email:    "admin@example.com",
		Password: "hunter2",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.LoginResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.NotEmpty(suite.T(), response.Data.Token)
	assert.Equal(suite.T(), "admin@example.com", response.Data.Email)

	// The returned token authorizes write requests
	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/students", []v1.StudentEditable{
		{AdmissionNumber: "ADM-1", Grade: "Grade 4"},
	}, map[string]string{"Authorization": "Bearer " + response.Data.Token})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
}

// Email matching is case insensitive since stored addresses are
// lowercased.
func (suite *TestSuiteStandard) TestLoginEmailCase() {
	suite.createTestUser("admin@example.com", "hunter2")

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/login", v1.LoginEditable{
		Email:    " Admin@Example.com ",
		Password: "hunter2",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestLoginFails() {
	suite.createTestUser("admin@example.com", "hunter2")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"Wrong password", "admin@example.com", "wrong"},
		{"Unknown email", "nobody@example.com", "hunter2"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/login", v1.LoginEditable{
				Email:    tt.email,
				Password: tt.password,
			})
			test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)

			var response v1.LoginResponse
			test.DecodeResponse(t, &r, &response)
			assert.Nil(t, response.Data)
			require.NotNil(t, response.Error)
			assert.Equal(t, "the email address or password is incorrect", *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestLoginEmptyBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/login", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// Reads are open, writes require a valid token.
func (suite *TestSuiteStandard) TestAuthRequiredForWrites() {
	student := createTestStudent(suite.T(), v1.StudentEditable{})

	tests := []struct {
		name   string
		method string
		url    string
		status int
	}{
		{"GET without token", http.MethodGet, "http://example.com/v1/students", http.StatusOK},
		{"POST without token", http.MethodPost, "http://example.com/v1/students", http.StatusUnauthorized},
		{"PATCH without token", http.MethodPatch, student.Data.Links.Self, http.StatusUnauthorized},
		{"DELETE without token", http.MethodDelete, student.Data.Links.Self, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, tt.url, "[]", map[string]string{"Authorization": "None"})
			assert.Equal(t, tt.status, r.Code, "Response body: %s", r.Body.String())
		})
	}
}

func (suite *TestSuiteStandard) TestAuthInvalidToken() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/students", "[]", map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}
