package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/shulebooks/backend/internal/models"
	"github.com/shulebooks/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestFeeStructureUnique() {
	suite.createTestFeeStructure(models.FeeStructure{
		Grade:        "Grade 4",
		AcademicYear: "2025",
	})

	err := models.DB.Create(&models.FeeStructure{
		Grade:        "Grade 4",
		AcademicYear: "2025",
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrFeeStructureNotUnique)

	// The same grade in another year is fine
	suite.createTestFeeStructure(models.FeeStructure{
		Grade:        "Grade 4",
		AcademicYear: "2026",
	})
}

func (suite *TestSuiteStandard) TestFeeStructureInvalidGrade() {
	err := models.DB.Create(&models.FeeStructure{
		Grade:        "Class 4",
		AcademicYear: "2025",
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrInvalidGrade)
}

func (suite *TestSuiteStandard) TestFeeStructureNegativeAmount() {
	err := models.DB.Create(&models.FeeStructure{
		Grade:        "Grade 4",
		AcademicYear: "2025",
		Term2Amount:  decimal.NewFromInt(-500),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrFeeAmountNegative)
}

func (suite *TestSuiteStandard) TestFeeStructureTermAmount() {
	structure := models.FeeStructure{
		Term1Amount: decimal.NewFromInt(100),
		Term2Amount: decimal.NewFromInt(200),
		Term3Amount: decimal.NewFromInt(300),
	}

	assert.True(suite.T(), structure.TermAmount(types.Term1).Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), structure.TermAmount(types.Term2).Equal(decimal.NewFromInt(200)))
	assert.True(suite.T(), structure.TermAmount(types.Term3).Equal(decimal.NewFromInt(300)))
	assert.True(suite.T(), structure.TermAmount(types.Term(7)).IsZero())
}
