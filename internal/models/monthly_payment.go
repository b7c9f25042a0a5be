package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shulebooks/backend/internal/ledger"
	"github.com/shulebooks/backend/internal/types"
	"gorm.io/gorm"
)

// MonthlyPayment is a salary disbursement record, owned by its staff
// member. The composite primary key enforces at most one record per
// staff member and period.
type MonthlyPayment struct {
	Timestamps
	StaffMemberID uuid.UUID       `gorm:"primaryKey"` // ID of the staff member
	Year          int             `gorm:"primaryKey"`
	Month         types.MonthName `gorm:"primaryKey"`
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaidDate      time.Time
	PaidBy        string
	Notes         string
	Status        ledger.PayrollStatus
}

var ErrMonthlyPaymentNotUnique = errors.New("you can not create multiple monthly payments for the same staff member and period")

func (m *MonthlyPayment) BeforeSave(_ *gorm.DB) error {
	m.Notes = strings.TrimSpace(m.Notes)
	m.PaidBy = strings.TrimSpace(m.PaidBy)

	return nil
}

// AfterFind sets the timezone of the paid date to UTC, matching what
// was written.
func (m *MonthlyPayment) AfterFind(_ *gorm.DB) error {
	m.PaidDate = m.PaidDate.In(time.UTC)
	return nil
}

// newMonthlyPayment returns the database resource for a ledger payroll
// record.
func newMonthlyPayment(staffMemberID uuid.UUID, record ledger.MonthlyPayment) MonthlyPayment {
	return MonthlyPayment{
		StaffMemberID: staffMemberID,
		Year:          record.Year,
		Month:         record.Month,
		Amount:        record.Amount,
		PaidDate:      record.PaidDate,
		PaidBy:        record.PaidBy,
		Notes:         record.Notes,
		Status:        record.Status,
	}
}

// toLedgerPayments converts database records into the ledger's payroll
// representation.
func toLedgerPayments(records []MonthlyPayment) []ledger.MonthlyPayment {
	payments := make([]ledger.MonthlyPayment, 0, len(records))
	for _, record := range records {
		payments = append(payments, ledger.MonthlyPayment{
			Year:     record.Year,
			Month:    record.Month,
			Amount:   record.Amount,
			PaidDate: record.PaidDate,
			PaidBy:   record.PaidBy,
			Notes:    record.Notes,
			Status:   record.Status,
		})
	}

	return payments
}
