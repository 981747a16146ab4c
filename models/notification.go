package models

// ReminderPayload is the queued task body for an appointment reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	ReminderIndex int    `json:"reminderIndex"`
	PatientID     string `json:"patientId"`
	Channel       string `json:"channel"` // email, sms or push
	FireDate      string `json:"fireDate"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}

// PaymentRequest asks for an appointment's consultation fee to be collected.
type PaymentRequest struct {
	AppointmentID string  `json:"appointmentId" binding:"required"`
	PatientID     string  `json:"patientId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Method        string  `json:"method" binding:"required"` // card or cash
}

// Invoice records the outcome of a payment attempt.
type Invoice struct {
	InvoiceID     string  `bson:"invoiceId" json:"invoiceId"`
	AppointmentID string  `bson:"appointmentId" json:"appointmentId"`
	PatientID     string  `bson:"patientId" json:"patientId"`
	Amount        float64 `bson:"amount" json:"amount"`
	Currency      string  `bson:"currency" json:"currency"`
	Method        string  `bson:"method" json:"method"`
	PaymentID     string  `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	ClientSecret  string  `bson:"-" json:"clientSecret,omitempty"`
	Status        string  `bson:"status" json:"status"`
}
