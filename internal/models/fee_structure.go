package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/shulebooks/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// FeeStructure defines the charge for each of the three terms for one
// grade in one academic year.
type FeeStructure struct {
	DefaultModel
	Grade        string          `gorm:"uniqueIndex:fee_structure_grade_year"`
	AcademicYear string          `gorm:"uniqueIndex:fee_structure_grade_year"`
	Term1Amount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Term2Amount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Term3Amount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var (
	ErrFeeStructureNotUnique = errors.New("you can not create multiple fee structures for the same grade and academic year")
	ErrFeeAmountNegative     = errors.New("term fee amounts must not be negative")
)

// BeforeSave trims whitespace and verifies the grade.
func (f *FeeStructure) BeforeSave(_ *gorm.DB) error {
	f.Grade = strings.TrimSpace(f.Grade)
	f.AcademicYear = strings.TrimSpace(f.AcademicYear)

	if !slices.Contains(Grades, f.Grade) {
		return ErrInvalidGrade
	}

	return nil
}

// AfterSave verifies that no term charge is negative. A zero charge is
// allowed, e.g. for fully sponsored grades.
func (f *FeeStructure) AfterSave(_ *gorm.DB) error {
	for _, amount := range []decimal.Decimal{f.Term1Amount, f.Term2Amount, f.Term3Amount} {
		if amount.IsNegative() {
			return ErrFeeAmountNegative
		}
	}

	return nil
}

// TermAmount returns the charge for the given term.
func (f FeeStructure) TermAmount(term types.Term) decimal.Decimal {
	switch term {
	case types.Term1:
		return f.Term1Amount
	case types.Term2:
		return f.Term2Amount
	case types.Term3:
		return f.Term3Amount
	}

	return decimal.Zero
}
