package models

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/shulebooks/backend/internal/ledger"
	"github.com/shulebooks/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// StaffRole distinguishes teaching from non-teaching staff. Both share
// the same payroll handling.
type StaffRole string

const (
	RoleTeacher StaffRole = "teacher"
	RoleSupport StaffRole = "support"
)

// PaymentFrequency is how often a staff member's salary is due.
type PaymentFrequency string

const (
	FrequencyMonthly PaymentFrequency = "Monthly"
	FrequencyWeekly  PaymentFrequency = "Weekly"
	FrequencyDaily   PaymentFrequency = "Daily"
	FrequencyOther   PaymentFrequency = "Other"
)

// PaymentFrequencies lists all valid payment frequencies.
var PaymentFrequencies = []PaymentFrequency{FrequencyMonthly, FrequencyWeekly, FrequencyDaily, FrequencyOther}

// StaffMember represents a teacher or a member of the non-teaching
// staff. Teachers are deactivated instead of deleted so that their
// payroll history stays available; support staff may be deleted
// outright.
type StaffMember struct {
	DefaultModel
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Role             StaffRole
	Salary           decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaymentFrequency PaymentFrequency
	Active           bool
	MonthlyPayments  []MonthlyPayment `gorm:"constraint:OnDelete:CASCADE"`
}

var (
	ErrInvalidStaffRole        = errors.New("the staff role must be teacher or support")
	ErrInvalidPaymentFrequency = errors.New("the payment frequency is not valid")
	ErrSalaryNegative          = errors.New("the salary must not be negative")
)

// BeforeSave trims whitespace and verifies the enumerated fields.
func (s *StaffMember) BeforeSave(_ *gorm.DB) error {
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)

	if s.Role != RoleTeacher && s.Role != RoleSupport {
		return ErrInvalidStaffRole
	}

	if !slices.Contains(PaymentFrequencies, s.PaymentFrequency) {
		return ErrInvalidPaymentFrequency
	}

	if s.Salary.IsNegative() {
		return ErrSalaryNegative
	}

	return nil
}

// payrollRecords loads the monthly payments for the staff member in
// creation order, which keeps duplicate detection deterministic.
func (s StaffMember) payrollRecords(db *gorm.DB) ([]MonthlyPayment, error) {
	var records []MonthlyPayment

	err := db.
		Where(&MonthlyPayment{StaffMemberID: s.ID}).
		Order("datetime(created_at) ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// PayrollStatus answers whether the staff member has been paid for the
// (year, month) period.
//
// If the store contains duplicate records for the period, the first one
// wins and the inconsistency is logged. The unique index on
// monthly_payments makes that state unreachable through this backend.
func (s StaffMember) PayrollStatus(db *gorm.DB, tracker ledger.Tracker, year int, month types.MonthName) (ledger.PeriodStatus, error) {
	records, err := s.payrollRecords(db)
	if err != nil {
		return ledger.PeriodStatus{}, err
	}

	status, err := tracker.Status(toLedgerPayments(records), year, month)
	if errors.Is(err, ledger.ErrDuplicateMonthlyPayment) {
		log.Warn().
			Str("staff-member", s.ID.String()).
			Int("year", year).
			Str("month", month.String()).
			Msg("duplicate monthly payment records")

		return status, nil
	}

	return status, err
}

// MarkPaid records a salary payment for the (year, month) period.
//
// An existing record for the period is replaced so that marking the
// same period twice leaves exactly one record.
func (s StaffMember) MarkPaid(db *gorm.DB, tracker ledger.Tracker, year int, month types.MonthName, opts ledger.MarkPaidOptions) (MonthlyPayment, error) {
	updated, err := tracker.MarkPaid(nil, year, month, s.Salary, opts)
	if err != nil {
		return MonthlyPayment{}, err
	}

	record := newMonthlyPayment(s.ID, updated[len(updated)-1])

	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().
			Where(&MonthlyPayment{StaffMemberID: s.ID, Year: year, Month: month}).
			Delete(&MonthlyPayment{}).Error
		if err != nil {
			return err
		}

		return tx.Create(&record).Error
	})
	if err != nil {
		return MonthlyPayment{}, err
	}

	return record, nil
}

// UndoPayment removes the salary payment record for the (year, month)
// period. Removing a period without a record is a no-op.
func (s StaffMember) UndoPayment(db *gorm.DB, tracker ledger.Tracker, year int, month types.MonthName) error {
	// The tracker only validates here, the removal itself is a delete
	if _, err := tracker.UndoPayment(nil, year, month); err != nil {
		return err
	}

	return db.Unscoped().
		Where(&MonthlyPayment{StaffMemberID: s.ID, Year: year, Month: month}).
		Delete(&MonthlyPayment{}).Error
}

// LatestPayment returns the most recent monthly payment by paid date.
// The second return value is false if the staff member has none.
func (s StaffMember) LatestPayment(db *gorm.DB) (MonthlyPayment, bool, error) {
	records, err := s.payrollRecords(db)
	if err != nil {
		return MonthlyPayment{}, false, err
	}

	latest, ok := ledger.Latest(toLedgerPayments(records))
	if !ok {
		return MonthlyPayment{}, false, nil
	}

	return newMonthlyPayment(s.ID, latest), true, nil
}
