package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shulebooks/backend/internal/types"
)

// PayrollStatus is the payment status of a staff member for one period.
type PayrollStatus string

const (
	StatusPaid    PayrollStatus = "Paid"
	StatusPending PayrollStatus = "Pending"

	// StatusPartial is part of the status vocabulary for forward
	// compatibility. No operation currently produces it.
	StatusPartial PayrollStatus = "Partial"
)

// MonthlyPayment is a salary disbursement record for one (year, month)
// period. A staff member has at most one record per period.
type MonthlyPayment struct {
	Year     int
	Month    types.MonthName
	Amount   decimal.Decimal
	PaidDate time.Time
	PaidBy   string
	Notes    string
	Status   PayrollStatus
}

// PeriodStatus is the answer to "is this staff member paid for this
// period?". For periods without a record, it reports Pending with a
// zero amount and no paid date.
type PeriodStatus struct {
	Status   PayrollStatus
	Amount   decimal.Decimal
	PaidDate *time.Time
	Notes    string
}

// MarkPaidOptions are the optional fields for MarkPaid. Zero values are
// replaced with defaults.
type MarkPaidOptions struct {
	Amount decimal.Decimal // Defaults to the staff member's salary
	Notes  string          // Defaults to a generated note for the period
	PaidBy string          // Defaults to the tracker's default actor
}

// Tracker mutates and inspects the sparse list of monthly payments for a
// staff member.
type Tracker struct {
	// DefaultActor is recorded as PaidBy when MarkPaid is called
	// without one.
	DefaultActor string

	// Now returns the current time. It exists so tests can use a fixed
	// clock. When nil, time.Now in UTC is used.
	Now func() time.Time
}

// NewTracker returns a Tracker with the given default actor.
func NewTracker(defaultActor string) Tracker {
	return Tracker{DefaultActor: defaultActor}
}

func (tr Tracker) now() time.Time {
	if tr.Now != nil {
		return tr.Now()
	}

	return time.Now().In(time.UTC)
}

func validatePeriod(year int, month types.MonthName) error {
	if year <= 0 {
		return fmt.Errorf("%w: year %d is not positive", ErrInvalidPeriod, year)
	}

	if !month.Valid() {
		return fmt.Errorf("%w: %q is not a month", ErrInvalidPeriod, month)
	}

	return nil
}

// Status returns the payment status for the (year, month) period.
//
// If the list contains more than one record for the period, the first
// one is returned together with ErrDuplicateMonthlyPayment. The result
// is valid in that case; callers should surface the error as a data
// integrity warning.
func (tr Tracker) Status(payments []MonthlyPayment, year int, month types.MonthName) (PeriodStatus, error) {
	if err := validatePeriod(year, month); err != nil {
		return PeriodStatus{}, err
	}

	var matches []MonthlyPayment
	for _, payment := range payments {
		if payment.Year == year && payment.Month == month {
			matches = append(matches, payment)
		}
	}

	if len(matches) == 0 {
		return PeriodStatus{
			Status: StatusPending,
			Amount: decimal.Zero,
			Notes:  "Not yet paid",
		}, nil
	}

	first := matches[0]
	paidDate := first.PaidDate
	status := PeriodStatus{
		Status:   first.Status,
		Amount:   first.Amount,
		PaidDate: &paidDate,
		Notes:    first.Notes,
	}

	if len(matches) > 1 {
		return status, fmt.Errorf("%w for %s %d", ErrDuplicateMonthlyPayment, month, year)
	}

	return status, nil
}

// MarkPaid records a salary payment for the (year, month) period and
// returns the updated payment list.
//
// Any existing record for the period is replaced, never duplicated, so
// the call is idempotent: marking the same period twice leaves a single
// record.
func (tr Tracker) MarkPaid(payments []MonthlyPayment, year int, month types.MonthName, salary decimal.Decimal, opts MarkPaidOptions) ([]MonthlyPayment, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	if opts.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrNegativeAmount, opts.Amount)
	}

	amount := opts.Amount
	if amount.IsZero() {
		amount = salary
	}

	notes := opts.Notes
	if notes == "" {
		notes = fmt.Sprintf("Salary payment for %s %d", month, year)
	}

	paidBy := opts.PaidBy
	if paidBy == "" {
		paidBy = tr.DefaultActor
	}

	updated := removePeriod(payments, year, month)
	updated = append(updated, MonthlyPayment{
		Year:     year,
		Month:    month,
		Amount:   amount,
		PaidDate: tr.now(),
		PaidBy:   paidBy,
		Notes:    notes,
		Status:   StatusPaid,
	})

	return updated, nil
}

// UndoPayment removes the record for the (year, month) period and
// returns the updated payment list. Undoing a period without a record
// is a no-op, not an error.
func (tr Tracker) UndoPayment(payments []MonthlyPayment, year int, month types.MonthName) ([]MonthlyPayment, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	return removePeriod(payments, year, month), nil
}

// Latest returns the most recent monthly payment by paid date. The
// second return value is false if the list is empty.
func Latest(payments []MonthlyPayment) (MonthlyPayment, bool) {
	if len(payments) == 0 {
		return MonthlyPayment{}, false
	}

	latest := payments[0]
	for _, payment := range payments[1:] {
		if payment.PaidDate.After(latest.PaidDate) {
			latest = payment
		}
	}

	return latest, true
}

func removePeriod(payments []MonthlyPayment, year int, month types.MonthName) []MonthlyPayment {
	kept := make([]MonthlyPayment, 0, len(payments))
	for _, payment := range payments {
		if payment.Year == year && payment.Month == month {
			continue
		}

		kept = append(kept, payment)
	}

	return kept
}
