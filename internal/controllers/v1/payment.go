package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shulebooks/backend/internal/httputil"
	"github.com/shulebooks/backend/internal/ledger"
	"github.com/shulebooks/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterPaymentRoutes registers the routes for fee payments with
// the RouterGroup that is passed.
func RegisterPaymentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPaymentList)
		r.GET("", GetPayments)
		r.POST("", CreatePayments)
	}

	// Payment with ID
	{
		r.OPTIONS("/:id", OptionsPaymentDetail)
		r.GET("/:id", GetPayment)
		r.PATCH("/:id", UpdatePayment)
		r.DELETE("/:id", DeletePayment)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payments
// @Success		204
// @Router			/v1/payments [options]
func OptionsPaymentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payments/{id} [options]
func OptionsPaymentDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Payment{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create payments
// @Description	Creates new fee payments. Balances of the affected payment groups are recomputed. A payment for a group without a fee structure is rejected.
// @Tags			Payments
// @Produce		json
// @Success		201			{object}	PaymentCreateResponse
// @Failure		400			{object}	PaymentCreateResponse
// @Failure		404			{object}	PaymentCreateResponse
// @Failure		500			{object}	PaymentCreateResponse
// @Param			payments	body		[]PaymentEditable	true	"Payments"
// @Router			/v1/payments [post]
func CreatePayments(c *gin.Context) {
	var editables []PaymentEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	httpStatus := http.StatusCreated
	r := PaymentCreateResponse{}

	for _, editable := range editables {
		payment := editable.model()

		// Create and recompute together so that a payment that can not
		// get a balance is not stored at all
		err = models.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}

			return models.RecomputeGroup(tx, payment.Group())
		})
		if err != nil {
			httpStatus = r.appendError(err, httpStatus)
			continue
		}

		// Reload for the computed balance
		err = models.DB.First(&payment, payment.ID).Error
		if err != nil {
			httpStatus = r.appendError(err, httpStatus)
			continue
		}

		data := newPayment(c, payment)
		r.Data = append(r.Data, PaymentResponse{Data: &data})
	}

	c.JSON(httpStatus, r)
}

// @Summary		Get payments
// @Description	Returns a list of fee payments
// @Tags			Payments
// @Produce		json
// @Success		200	{object}	PaymentListResponse
// @Failure		400	{object}	PaymentListResponse
// @Failure		500	{object}	PaymentListResponse
// @Router			/v1/payments [get]
// @Param			student			query	string	false	"Filter by student ID"
// @Param			term			query	int		false	"Filter by term"
// @Param			academicYear	query	string	false	"Filter by academic year"
// @Param			offset			query	uint	false	"The offset of the first payment returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of payments to return. Defaults to 50."
func GetPayments(c *gin.Context) {
	var filter PaymentQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, PaymentListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("date_paid ASC, datetime(created_at) ASC").
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 payments and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var payments []models.Payment
	err := q.Find(&payments).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &e,
		})
		return
	}

	data := make([]PaymentObject, 0, len(payments))
	for _, payment := range payments {
		data = append(data, newPayment(c, payment))
	}

	c.JSON(http.StatusOK, PaymentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get payment
// @Description	Returns a specific fee payment
// @Tags			Payments
// @Produce		json
// @Success		200	{object}	PaymentResponse
// @Failure		400	{object}	PaymentResponse
// @Failure		404	{object}	PaymentResponse
// @Failure		500	{object}	PaymentResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payments/{id} [get]
func GetPayment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	var payment models.Payment
	err = models.DB.First(&payment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	data := newPayment(c, payment)
	c.JSON(http.StatusOK, PaymentResponse{Data: &data})
}

// @Summary		Update payment
// @Description	Update an existing fee payment. Only values to be updated need to be specified. Balances of the affected payment groups are recomputed.
// @Tags			Payments
// @Accept			json
// @Produce		json
// @Success		200		{object}	PaymentResponse
// @Failure		400		{object}	PaymentResponse
// @Failure		404		{object}	PaymentResponse
// @Failure		500		{object}	PaymentResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		PaymentEditable	true	"Payment"
// @Router			/v1/payments/{id} [patch]
func UpdatePayment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	var payment models.Payment
	err = models.DB.First(&payment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PaymentEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	var data PaymentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	// The model hooks verify these fields on every save, so fill them
	// in from the existing resource when the request does not set them
	if data.AmountPaid.IsZero() {
		data.AmountPaid = payment.AmountPaid
	}
	if data.Term == 0 {
		data.Term = payment.Term
	}
	if data.AcademicYear == "" {
		data.AcademicYear = payment.AcademicYear
	}
	if data.StudentID == uuid.Nil {
		data.StudentID = payment.StudentID
	}

	// A payment that moves between groups changes the balances of both
	oldGroup := payment.Group()

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&payment).Select("", updateFields...).Updates(data.model()).Error
		if err != nil {
			return err
		}

		if err := models.RecomputeGroup(tx, payment.Group()); err != nil {
			return err
		}

		if payment.Group() != oldGroup {
			return models.RecomputeGroup(tx, oldGroup)
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	// Reload for the computed balance
	err = models.DB.First(&payment, payment.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	r := newPayment(c, payment)
	c.JSON(http.StatusOK, PaymentResponse{Data: &r})
}

// @Summary		Delete payment
// @Description	Deletes a fee payment. Balances of the remaining payments in its group are recomputed.
// @Tags			Payments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payments/{id} [delete]
func DeletePayment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var payment models.Payment
	err = models.DB.First(&payment, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}

		// A group that lost its fee structure can not be recomputed,
		// but that must not make the payment undeletable
		err := models.RecomputeGroup(tx, payment.Group())
		if errors.Is(err, ledger.ErrMissingFeeStructure) {
			log.Warn().
				Str("payment", payment.ID.String()).
				Str("reason", err.Error()).
				Msg("balance recomputation skipped")
			return nil
		}

		return err
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
