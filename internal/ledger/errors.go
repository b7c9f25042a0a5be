package ledger

import "errors"

var (
	// ErrMissingFeeStructure is returned when no fee structure is
	// configured for a payment group's grade and academic year.
	ErrMissingFeeStructure = errors.New("no fee structure is configured")

	// ErrNegativeTermCharge is returned when a term charge is negative.
	ErrNegativeTermCharge = errors.New("the term charge must not be negative")

	// ErrInvalidPeriod is returned for payroll periods with an invalid
	// month name or a non-positive year.
	ErrInvalidPeriod = errors.New("the payroll period is invalid")

	// ErrNegativeAmount is returned when a salary payment amount is
	// negative.
	ErrNegativeAmount = errors.New("the payment amount must not be negative")

	// ErrDuplicateMonthlyPayment reports that more than one monthly
	// payment exists for the same period. The store enforces uniqueness,
	// so this is a data integrity warning, not a hard failure: lookups
	// still return the first matching record.
	ErrDuplicateMonthlyPayment = errors.New("more than one monthly payment exists")
)
