package handlers

import (
	userRepoPkg "healthhub/database/repository/user"
)

// HandlerBundle groups all endpoint handlers plus the repository the auth
// middleware verifies tokens against.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Auth         *AuthHandler
	User         *UserHandler
	Doctor       *DoctorHandler
	Hospital     *HospitalHandler
	Appointment  *AppointmentHandler
	Prescription *PrescriptionHandler
	LabReport    *LabReportHandler
	HealthRecord *HealthRecordHandler
	Payment      *PaymentHandler
}
