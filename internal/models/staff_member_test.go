package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/shulebooks/backend/internal/ledger"
	"github.com/shulebooks/backend/internal/models"
	"github.com/shulebooks/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTracker returns a tracker with a fixed clock so that paid dates
// are predictable.
func testTracker() ledger.Tracker {
	tracker := ledger.NewTracker("Admin")
	tracker.Now = func() time.Time {
		return time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	}

	return tracker
}

func (suite *TestSuiteStandard) TestStaffMemberInvalidRole() {
	err := models.DB.Create(&models.StaffMember{
		Role:             "janitor",
		PaymentFrequency: models.FrequencyMonthly,
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrInvalidStaffRole)
}

func (suite *TestSuiteStandard) TestStaffMemberInvalidPaymentFrequency() {
	err := models.DB.Create(&models.StaffMember{
		Role:             models.RoleTeacher,
		PaymentFrequency: "Quarterly",
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrInvalidPaymentFrequency)
}

func (suite *TestSuiteStandard) TestStaffMemberNegativeSalary() {
	err := models.DB.Create(&models.StaffMember{
		Role:             models.RoleTeacher,
		PaymentFrequency: models.FrequencyMonthly,
		Salary:           decimal.NewFromInt(-1),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrSalaryNegative)
}

func (suite *TestSuiteStandard) TestPayrollStatusDefaultPending() {
	member := suite.createTestStaffMember(models.StaffMember{})

	status, err := member.PayrollStatus(models.DB, testTracker(), 2025, types.June)
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), ledger.StatusPending, status.Status)
	assert.True(suite.T(), status.Amount.IsZero())
	assert.Nil(suite.T(), status.PaidDate)
	assert.Equal(suite.T(), "Not yet paid", status.Notes)
}

func (suite *TestSuiteStandard) TestPayrollStatusInvalidPeriod() {
	member := suite.createTestStaffMember(models.StaffMember{})

	_, err := member.PayrollStatus(models.DB, testTracker(), 2025, "Juneuary")
	assert.ErrorIs(suite.T(), err, ledger.ErrInvalidPeriod)

	_, err = member.PayrollStatus(models.DB, testTracker(), 0, types.June)
	assert.ErrorIs(suite.T(), err, ledger.ErrInvalidPeriod)
}

func (suite *TestSuiteStandard) TestMarkPaidDefaults() {
	member := suite.createTestStaffMember(models.StaffMember{
		Salary: decimal.NewFromInt(32000),
	})

	record, err := member.MarkPaid(models.DB, testTracker(), 2025, types.June, ledger.MarkPaidOptions{})
	require.Nil(suite.T(), err)

	assert.True(suite.T(), record.Amount.Equal(decimal.NewFromInt(32000)), "amount is %s", record.Amount)
	assert.Equal(suite.T(), "Admin", record.PaidBy)
	assert.Equal(suite.T(), "Salary payment for June 2025", record.Notes)
	assert.Equal(suite.T(), ledger.StatusPaid, record.Status)

	status, err := member.PayrollStatus(models.DB, testTracker(), 2025, types.June)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), ledger.StatusPaid, status.Status)
}

func (suite *TestSuiteStandard) TestMarkPaidReplaces() {
	member := suite.createTestStaffMember(models.StaffMember{})

	_, err := member.MarkPaid(models.DB, testTracker(), 2025, types.June, ledger.MarkPaidOptions{})
	require.Nil(suite.T(), err)

	// Marking the same period again replaces the record instead of
	// creating a duplicate
	_, err = member.MarkPaid(models.DB, testTracker(), 2025, types.June, ledger.MarkPaidOptions{
		Amount: decimal.NewFromInt(15000),
		Notes:  "Half salary",
	})
	require.Nil(suite.T(), err)

	var records []models.MonthlyPayment
	require.Nil(suite.T(), models.DB.Where(&models.MonthlyPayment{StaffMemberID: member.ID}).Find(&records).Error)
	require.Len(suite.T(), records, 1)
	assert.True(suite.T(), records[0].Amount.Equal(decimal.NewFromInt(15000)))
	assert.Equal(suite.T(), "Half salary", records[0].Notes)
}

func (suite *TestSuiteStandard) TestMarkPaidKeepsOtherPeriods() {
	member := suite.createTestStaffMember(models.StaffMember{})

	_, err := member.MarkPaid(models.DB, testTracker(), 2025, types.May, ledger.MarkPaidOptions{})
	require.Nil(suite.T(), err)
	_, err = member.MarkPaid(models.DB, testTracker(), 2025, types.June, ledger.MarkPaidOptions{})
	require.Nil(suite.T(), err)

	var records []models.MonthlyPayment
	require.Nil(suite.T(), models.DB.Where(&models.MonthlyPayment{StaffMemberID: member.ID}).Find(&records).Error)
	assert.Len(suite.T(), records, 2)
}

func (suite *TestSuiteStandard) TestMarkPaidInvalidPeriod() {
	member := suite.createTestStaffMember(models.StaffMember{})

	_, err := member.MarkPaid(models.DB, testTracker(), 2025, "Juneuary", ledger.MarkPaidOptions{})
	assert.ErrorIs(suite.T(), err, ledger.ErrInvalidPeriod)
}

func (suite *TestSuiteStandard) TestUndoPayment() {
	member := suite.createTestStaffMember(models.StaffMember{})

	_, err := member.MarkPaid(models.DB, testTracker(), 2025, types.June, ledger.MarkPaidOptions{})
	require.Nil(suite.T(), err)

	require.Nil(suite.T(), member.UndoPayment(models.DB, testTracker(), 2025, types.June))

	status, err := member.PayrollStatus(models.DB, testTracker(), 2025, types.June)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), ledger.StatusPending, status.Status)
}

func (suite *TestSuiteStandard) TestUndoPaymentNoRecord() {
	member := suite.createTestStaffMember(models.StaffMember{})

	// Undoing a period without a record is a no-op
	assert.Nil(suite.T(), member.UndoPayment(models.DB, testTracker(), 2025, types.June))
}

func (suite *TestSuiteStandard) TestUndoPaymentInvalidPeriod() {
	member := suite.createTestStaffMember(models.StaffMember{})

	err := member.UndoPayment(models.DB, testTracker(), -1, types.June)
	assert.ErrorIs(suite.T(), err, ledger.ErrInvalidPeriod)
}

func (suite *TestSuiteStandard) TestMonthlyPaymentUnique() {
	member := suite.createTestStaffMember(models.StaffMember{})

	payment := models.MonthlyPayment{
		StaffMemberID: member.ID,
		Year:          2025,
		Month:         types.June,
		Amount:        decimal.NewFromInt(1000),
		Status:        ledger.StatusPaid,
	}
	require.Nil(suite.T(), models.DB.Create(&payment).Error)

	duplicate := models.MonthlyPayment{
		StaffMemberID: member.ID,
		Year:          2025,
		Month:         types.June,
		Amount:        decimal.NewFromInt(2000),
		Status:        ledger.StatusPaid,
	}
	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrMonthlyPaymentNotUnique)
}

func (suite *TestSuiteStandard) TestLatestPayment() {
	member := suite.createTestStaffMember(models.StaffMember{})

	_, ok, err := member.LatestPayment(models.DB)
	require.Nil(suite.T(), err)
	assert.False(suite.T(), ok)

	may := testTracker()
	may.Now = func() time.Time { return time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC) }
	_, err = member.MarkPaid(models.DB, may, 2025, types.May, ledger.MarkPaidOptions{})
	require.Nil(suite.T(), err)

	_, err = member.MarkPaid(models.DB, testTracker(), 2025, types.June, ledger.MarkPaidOptions{})
	require.Nil(suite.T(), err)

	latest, ok, err := member.LatestPayment(models.DB)
	require.Nil(suite.T(), err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), types.June, latest.Month)
}
