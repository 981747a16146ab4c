package payment

import (
	"context"
	"fmt"
	"strings"

	"healthhub/config"
	appointmentRepo "healthhub/database/repository/appointment"
	invoiceRepo "healthhub/database/repository/invoice"
	"healthhub/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// PaymentService collects consultation fees for appointments.
type PaymentService interface {
	// Charge raises an invoice for the appointment. Card payments create a
	// Stripe PaymentIntent and return its client secret for the client-side
	// confirmation flow; cash payments settle immediately.
	Charge(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
	// Confirm marks a card invoice paid once the intent succeeded.
	Confirm(ctx context.Context, invoiceID, paymentIntentID string) (*models.Invoice, error)
	History(appointmentID string) ([]models.Invoice, error)
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Invoices invoiceRepo.InvoiceRepository
	Appts    appointmentRepo.AppointmentRepository
}

// NewDefaultPaymentService wires the payment service and sets the Stripe key.
func NewDefaultPaymentService(invoices invoiceRepo.InvoiceRepository, appts appointmentRepo.AppointmentRepository) *DefaultPaymentService {
	stripe.Key = config.AppConfig.StripeKey
	return &DefaultPaymentService{Invoices: invoices, Appts: appts}
}

func (s *DefaultPaymentService) Charge(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if req.AppointmentID == "" {
		return nil, fmt.Errorf("appointment id is required")
	}
	method := strings.ToLower(req.Method)
	if method != "card" && method != "cash" {
		return nil, fmt.Errorf("unsupported payment method %q", req.Method)
	}

	appt, err := s.Appts.GetByID(req.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return nil, fmt.Errorf("appointment with id %s not found", req.AppointmentID)
	}
	if appt.PaymentStatus == models.PaymentPaid {
		return nil, fmt.Errorf("appointment %s is already paid", req.AppointmentID)
	}

	amount := req.Amount
	if amount <= 0 {
		amount = appt.Cost
	}
	if amount <= 0 {
		return nil, fmt.Errorf("no amount due for appointment %s", req.AppointmentID)
	}
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	invoice := &models.Invoice{
		InvoiceID:     uuid.New().String(),
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		Amount:        amount,
		Currency:      currency,
		Method:        method,
		Status:        "pending",
	}

	if method == "cash" {
		invoice.Status = "paid"
		if err := s.Invoices.Create(invoice); err != nil {
			return nil, err
		}
		if err := s.markAppointmentPaid(appt); err != nil {
			return nil, err
		}
		return invoice, nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"appointmentId": appt.ID,
			"invoiceId":     invoice.InvoiceID,
		},
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	invoice.PaymentID = intent.ID
	invoice.ClientSecret = intent.ClientSecret
	if err := s.Invoices.Create(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *DefaultPaymentService) Confirm(ctx context.Context, invoiceID, paymentIntentID string) (*models.Invoice, error) {
	intent, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment intent: %w", err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("payment intent %s has not succeeded (status %s)", paymentIntentID, intent.Status)
	}

	if err := s.Invoices.UpdateStatus(invoiceID, "paid", intent.ID); err != nil {
		return nil, err
	}

	appointmentID := intent.Metadata["appointmentId"]
	if appointmentID != "" {
		appt, err := s.Appts.GetByID(appointmentID)
		if err == nil && appt != nil {
			if err := s.markAppointmentPaid(appt); err != nil {
				return nil, err
			}
		}
	}

	return &models.Invoice{
		InvoiceID:     invoiceID,
		AppointmentID: appointmentID,
		Amount:        float64(intent.Amount) / 100,
		Currency:      string(intent.Currency),
		Method:        "card",
		PaymentID:     intent.ID,
		Status:        "paid",
	}, nil
}

// History lists the invoices raised for one appointment.
func (s *DefaultPaymentService) History(appointmentID string) ([]models.Invoice, error) {
	return s.Invoices.GetByAppointment(appointmentID)
}

func (s *DefaultPaymentService) markAppointmentPaid(appt *models.Appointment) error {
	appt.PaymentStatus = models.PaymentPaid
	if err := s.Appts.Update(appt); err != nil {
		return fmt.Errorf("failed to mark appointment paid: %w", err)
	}
	return nil
}
