package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/shulebooks/backend/internal/models"
)

// FeeStructureEditable represents all user configurable parameters
type FeeStructureEditable struct {
	Grade        string          `json:"grade" example:"Grade 4" default:""`      // Grade the fee structure applies to
	AcademicYear string          `json:"academicYear" example:"2025" default:""`  // Academic year the fee structure applies to
	Term1Amount  decimal.Decimal `json:"term1Amount" example:"9500"`              // Charge for the first term
	Term2Amount  decimal.Decimal `json:"term2Amount" example:"9500"`              // Charge for the second term
	Term3Amount  decimal.Decimal `json:"term3Amount" example:"8000"`              // Charge for the third term
}

func (editable FeeStructureEditable) model() models.FeeStructure {
	return models.FeeStructure{
		Grade:        editable.Grade,
		AcademicYear: editable.AcademicYear,
		Term1Amount:  editable.Term1Amount,
		Term2Amount:  editable.Term2Amount,
		Term3Amount:  editable.Term3Amount,
	}
}

type FeeStructureLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/fee-structures/0b0d6ee7-4b4f-4d79-a7b6-7d2f4f140f27"` // The fee structure itself
}

type FeeStructure struct {
	models.DefaultModel
	FeeStructureEditable
	Links FeeStructureLinks `json:"links"`
}

func newFeeStructure(c *gin.Context, model models.FeeStructure) FeeStructure {
	url := c.GetString(string(models.DBContextURL))

	return FeeStructure{
		DefaultModel: model.DefaultModel,
		FeeStructureEditable: FeeStructureEditable{
			Grade:        model.Grade,
			AcademicYear: model.AcademicYear,
			Term1Amount:  model.Term1Amount,
			Term2Amount:  model.Term2Amount,
			Term3Amount:  model.Term3Amount,
		},
		Links: FeeStructureLinks{
			Self: fmt.Sprintf("%s/v1/fee-structures/%s", url, model.ID),
		},
	}
}

type FeeStructureListResponse struct {
	Data       []FeeStructure `json:"data"`                                                          // List of fee structures
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type FeeStructureCreateResponse struct {
	Data  []FeeStructureResponse `json:"data"`                                                          // List of the created fee structures or their respective error
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (f *FeeStructureCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	f.Data = append(f.Data, FeeStructureResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type FeeStructureResponse struct {
	Data  *FeeStructure `json:"data"`                                                          // Data for the fee structure
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type FeeStructureQueryFilter struct {
	Grade        string `form:"grade"`                      // By grade
	AcademicYear string `form:"academicYear"`               // By academic year
	Offset       uint   `form:"offset" filterField:"false"` // The offset of the first fee structure returned. Defaults to 0.
	Limit        int    `form:"limit" filterField:"false"`  // Maximum number of fee structures to return. Defaults to 50.
}

func (f FeeStructureQueryFilter) model() models.FeeStructure {
	return models.FeeStructure{
		Grade:        f.Grade,
		AcademicYear: f.AcademicYear,
	}
}
