package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oduyemi/preschool-api/internal/service"
	appErrors "github.com/oduyemi/preschool-api/pkg/errors"
	"github.com/oduyemi/preschool-api/pkg/response"
)

// BillingHandler exposes billing and payment endpoints.
type BillingHandler struct {
	billing *service.BillingService
}

// NewBillingHandler constructs BillingHandler.
func NewBillingHandler(billing *service.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// CreateBill godoc
// @Summary Open a bill against a student
// @Tags Billing
// @Accept json
// @Produce json
// @Param payload body service.CreateBillRequest true "Bill payload"
// @Success 201 {object} response.Envelope
// @Router /bills [post]
func (h *BillingHandler) CreateBill(c *gin.Context) {
	var req service.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	bill, err := h.billing.CreateBill(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, bill)
}

// ListBills godoc
// @Summary List bills
// @Tags Billing
// @Produce json
// @Param studentId query int false "Filter by student"
// @Success 200 {object} response.Envelope
// @Router /bills [get]
func (h *BillingHandler) ListBills(c *gin.Context) {
	var studentID int64
	if raw := c.Query("studentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid student id"))
			return
		}
		studentID = id
	}
	bills, err := h.billing.ListBills(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bills, nil)
}

// GetBill godoc
// @Summary Get bill detail with paid total
// @Tags Billing
// @Produce json
// @Param id path int true "Bill ID"
// @Success 200 {object} response.Envelope
// @Router /bills/{id} [get]
func (h *BillingHandler) GetBill(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid bill id"))
		return
	}
	bill, err := h.billing.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bill, nil)
}

// RecordPayment godoc
// @Summary Apply a payment to a bill
// @Tags Billing
// @Accept json
// @Produce json
// @Param payload body service.RecordPaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Router /payments [post]
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	payment, status, err := h.billing.RecordPayment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"payment": payment, "bill_status": status}, nil)
}

// ListPayments godoc
// @Summary List payments for a bill
// @Tags Billing
// @Produce json
// @Param id path int true "Bill ID"
// @Success 200 {object} response.Envelope
// @Router /bills/{id}/payments [get]
func (h *BillingHandler) ListPayments(c *gin.Context) {
	billID, ok := pathID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid bill id"))
		return
	}
	payments, err := h.billing.ListPayments(c.Request.Context(), billID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments, nil)
}

// GetPayment godoc
// @Summary Get payment detail
// @Tags Billing
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Envelope
// @Router /payments/{id} [get]
func (h *BillingHandler) GetPayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payment id"))
		return
	}
	payment, err := h.billing.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment, nil)
}

// DeletePayment godoc
// @Summary Delete a payment and recompute the bill status
// @Tags Billing
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Envelope
// @Router /payments/{id} [delete]
func (h *BillingHandler) DeletePayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payment id"))
		return
	}
	payment, err := h.billing.DeletePayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment, nil)
}

// Receipt godoc
// @Summary Download a PDF receipt for a payment
// @Tags Billing
// @Produce application/pdf
// @Param id path int true "Payment ID"
// @Success 200 {file} binary
// @Router /payments/{id}/receipt [get]
func (h *BillingHandler) Receipt(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payment id"))
		return
	}
	receipt, err := h.billing.Receipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("receipt_%d.pdf", id)))
	c.Data(http.StatusOK, "application/pdf", receipt)
}
