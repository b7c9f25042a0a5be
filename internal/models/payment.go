package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shulebooks/backend/internal/ledger"
	"github.com/shulebooks/backend/internal/types"
	"gorm.io/gorm"
)

// Payment is a single fee payment by a student for one term of an
// academic year. The balance is derived state, recomputed over the
// whole (student, term, academic year) group whenever any payment in
// the group changes.
type Payment struct {
	DefaultModel
	Student      Student   `json:"-"`
	StudentID    uuid.UUID `gorm:"index"`
	Term         types.Term
	AcademicYear string
	AmountPaid   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	DatePaid     time.Time
	Balance      decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Outstanding amount after this payment, negative when overpaid
}

var ErrPaymentAmountNotPositive = errors.New("payment amounts must be larger than zero")

// BeforeSave sets the timezone for the paid date to UTC and verifies
// the term.
func (p *Payment) BeforeSave(_ *gorm.DB) error {
	if p.DatePaid.IsZero() {
		p.DatePaid = time.Now().In(time.UTC)
	} else {
		p.DatePaid = p.DatePaid.In(time.UTC)
	}

	p.AcademicYear = strings.TrimSpace(p.AcademicYear)

	if !p.Term.Valid() {
		return types.ErrInvalidTerm
	}

	return nil
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Payment)
	return p.checkIntegrity(tx, *toSave)
}

func (p *Payment) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(p.AmountPaid) {
		return ErrPaymentAmountNotPositive
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (p *Payment) checkIntegrity(tx *gorm.DB, toSave Payment) error {
	return tx.First(&Student{}, toSave.StudentID).Error
}

// Group returns the payment group the payment belongs to.
func (p Payment) Group() PaymentGroup {
	return PaymentGroup{
		StudentID:    p.StudentID,
		Term:         p.Term,
		AcademicYear: p.AcademicYear,
	}
}

// PaymentGroup identifies the set of payments one student made for one
// term of one academic year.
type PaymentGroup struct {
	StudentID    uuid.UUID  `json:"studentId"`
	Term         types.Term `json:"term"`
	AcademicYear string     `json:"academicYear"`
}

// SkippedGroup reports a payment group a batch recomputation could not
// process.
type SkippedGroup struct {
	PaymentGroup
	Reason string `json:"reason"`
}

// RecomputeGroup recomputes the running balances of every payment in
// the group and persists the ones that changed.
//
// The term charge is resolved from the fee structure for the student's
// grade and the group's academic year. If none is configured, the
// error wraps ledger.ErrMissingFeeStructure and no balance is touched.
func RecomputeGroup(db *gorm.DB, group PaymentGroup) error {
	var student Student
	err := db.First(&student, group.StudentID).Error
	if err != nil {
		return err
	}

	var structure FeeStructure
	err = db.Where(&FeeStructure{Grade: student.Grade, AcademicYear: group.AcademicYear}).First(&structure).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return fmt.Errorf("%w for grade %q in %s", ledger.ErrMissingFeeStructure, student.Grade, group.AcademicYear)
		}

		return err
	}

	var payments []Payment
	err = db.
		Where(&Payment{StudentID: group.StudentID, Term: group.Term, AcademicYear: group.AcademicYear}).
		Find(&payments).Error
	if err != nil {
		return err
	}

	records := make([]ledger.PaymentRecord, 0, len(payments))
	for _, payment := range payments {
		records = append(records, ledger.PaymentRecord{
			ID:        payment.ID,
			Amount:    payment.AmountPaid,
			DatePaid:  payment.DatePaid,
			CreatedAt: payment.CreatedAt,
			Balance:   payment.Balance,
		})
	}

	result, err := ledger.RecomputeGroupBalances(records, structure.TermAmount(group.Term))
	if err != nil {
		return err
	}

	for _, record := range result {
		if !record.Changed {
			continue
		}

		// UpdateColumn skips the model hooks: the balance is derived
		// state, not an edit of the payment itself
		err = db.Model(&Payment{}).
			Where("id = ?", record.ID).
			UpdateColumn("balance", record.Balance).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// OutstandingBalance returns the term charge and the amount the student
// still owes for the term. The balance is negative when the student
// overpaid.
func OutstandingBalance(db *gorm.DB, student Student, term types.Term, academicYear string) (decimal.Decimal, decimal.Decimal, error) {
	if !term.Valid() {
		return decimal.Zero, decimal.Zero, types.ErrInvalidTerm
	}

	var structure FeeStructure
	err := db.Where(&FeeStructure{Grade: student.Grade, AcademicYear: academicYear}).First(&structure).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w for grade %q in %s", ledger.ErrMissingFeeStructure, student.Grade, academicYear)
		}

		return decimal.Zero, decimal.Zero, err
	}

	var payments []Payment
	err = db.
		Where(&Payment{StudentID: student.ID, Term: term, AcademicYear: academicYear}).
		Find(&payments).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	records := make([]ledger.PaymentRecord, 0, len(payments))
	for _, payment := range payments {
		records = append(records, ledger.PaymentRecord{
			ID:        payment.ID,
			Amount:    payment.AmountPaid,
			DatePaid:  payment.DatePaid,
			CreatedAt: payment.CreatedAt,
		})
	}

	charge := structure.TermAmount(term)
	result, err := ledger.RecomputeGroupBalances(records, charge)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return charge, ledger.Outstanding(result, charge), nil
}

// paymentGroups returns the distinct payment groups matched by the
// query.
func paymentGroups(db *gorm.DB) ([]PaymentGroup, error) {
	var groups []PaymentGroup

	err := db.
		Model(&Payment{}).
		Distinct("student_id", "term", "academic_year").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}

	return groups, nil
}

// RecomputeAllGroups recomputes the balances of every payment group and
// returns the number of groups it visited.
//
// Groups without a fee structure are skipped and reported, they do not
// abort the run. Any other error does.
func RecomputeAllGroups(db *gorm.DB) (int, []SkippedGroup, error) {
	groups, err := paymentGroups(db)
	if err != nil {
		return 0, nil, err
	}

	skipped, err := recomputeGroups(db, groups)
	return len(groups), skipped, err
}

// RecomputeGradeGroups recomputes the balances of every payment group
// of students in the grade for one academic year. This is needed when
// the fee structure for the grade and year changes.
func RecomputeGradeGroups(db *gorm.DB, grade, academicYear string) ([]SkippedGroup, error) {
	students := db.Model(&Student{}).Select("id").Where("grade = ?", grade)

	groups, err := paymentGroups(db.
		Where("student_id IN (?)", students).
		Where(&Payment{AcademicYear: academicYear}))
	if err != nil {
		return nil, err
	}

	return recomputeGroups(db, groups)
}

// RecomputeStudentGroups recomputes the balances of every payment group
// of a single student. This is needed when the student changes grade,
// since the grade determines which fee structure applies.
func RecomputeStudentGroups(db *gorm.DB, studentID uuid.UUID) ([]SkippedGroup, error) {
	groups, err := paymentGroups(db.Where(&Payment{StudentID: studentID}))
	if err != nil {
		return nil, err
	}

	return recomputeGroups(db, groups)
}

func recomputeGroups(db *gorm.DB, groups []PaymentGroup) ([]SkippedGroup, error) {
	skipped := make([]SkippedGroup, 0)
	for _, group := range groups {
		err := RecomputeGroup(db, group)

		// Groups without a fee structure and groups of students that
		// were removed are reported, they do not abort the run
		if errors.Is(err, ledger.ErrMissingFeeStructure) || errors.Is(err, ErrResourceNotFound) {
			skipped = append(skipped, SkippedGroup{PaymentGroup: group, Reason: err.Error()})
			continue
		}

		if err != nil {
			return nil, err
		}
	}

	return skipped, nil
}
