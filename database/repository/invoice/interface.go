package invoiceRepo

import "healthhub/models"

// InvoiceRepository defines data access for payment invoices.
type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	UpdateStatus(invoiceID, status, paymentID string) error
	GetByAppointment(appointmentID string) ([]models.Invoice, error)
}
