// Package ledger implements the fee balance and payroll status
// calculations. It operates on in-memory records only; loading and
// persisting them is the responsibility of the models package.
package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRecord is a single fee payment within a payment group, which is
// the set of all payments one student made for one term of one academic
// year.
type PaymentRecord struct {
	ID        uuid.UUID
	Amount    decimal.Decimal // The amount paid
	DatePaid  time.Time
	CreatedAt time.Time       // Used to order payments made on the same date
	Balance   decimal.Decimal // The balance after this payment was applied

	// Changed is set by RecomputeGroupBalances when the computed balance
	// differs from the stored one, so that callers only persist records
	// that actually changed.
	Changed bool
}

// RecomputeGroupBalances computes the running balance for every payment
// in a payment group.
//
// Payments are applied in ascending order of their paid date. Payments
// with the same paid date are applied in creation order. The balance
// after the k-th payment is the term charge minus the sum of the first k
// amounts. Overpayment results in a negative balance, which is kept as
// is: the sign carries meaning for consumers.
//
// The input slice is not modified. The returned slice is in application
// order.
func RecomputeGroupBalances(payments []PaymentRecord, termCharge decimal.Decimal) ([]PaymentRecord, error) {
	if termCharge.IsNegative() {
		return nil, ErrNegativeTermCharge
	}

	ordered := make([]PaymentRecord, len(payments))
	copy(ordered, payments)

	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].DatePaid.Equal(ordered[j].DatePaid) {
			return ordered[i].DatePaid.Before(ordered[j].DatePaid)
		}

		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	running := decimal.Zero
	for i := range ordered {
		running = running.Add(ordered[i].Amount)
		balance := termCharge.Sub(running)

		ordered[i].Changed = !balance.Equal(ordered[i].Balance)
		ordered[i].Balance = balance
	}

	return ordered, nil
}

// Outstanding returns the net outstanding balance of a recomputed
// payment group: the balance after the last payment, or the full term
// charge if the group has no payments.
func Outstanding(payments []PaymentRecord, termCharge decimal.Decimal) decimal.Decimal {
	if len(payments) == 0 {
		return termCharge
	}

	return payments[len(payments)-1].Balance
}
