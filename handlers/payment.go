package handlers

import (
	"net/http"

	"healthhub/middleware"
	"healthhub/models"
	"healthhub/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes consultation fee payment endpoints.
type PaymentHandler struct {
	Svc payment.PaymentService
}

// NewPaymentHandler wires the payment endpoints.
func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Svc: svc}
}

// Charge raises an invoice for an appointment. Card payments return a client
// secret for the client-side confirmation step.
func (h *PaymentHandler) Charge(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.PatientID = c.GetString(middleware.ContextUserID)

	invoice, err := h.Svc.Charge(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Warn("payment failed",
			zap.String("appointmentId", req.AppointmentID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// Confirm settles a card invoice after the payment intent succeeded.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req struct {
		InvoiceID       string `json:"invoiceId" binding:"required"`
		PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	invoice, err := h.Svc.Confirm(c.Request.Context(), req.InvoiceID, req.PaymentIntentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// History lists the invoices raised for one appointment.
func (h *PaymentHandler) History(c *gin.Context) {
	invoices, err := h.Svc.History(c.Param("appointmentId"))
	if err != nil {
		getLogger(c).Error("failed to list invoices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoices})
}
