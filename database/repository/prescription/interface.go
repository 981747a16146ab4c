package prescriptionRepo

import "healthhub/models"

// PrescriptionFilter narrows prescription listings.
type PrescriptionFilter struct {
	PatientID string
	DoctorID  string
	Status    string
	Page      int
	Limit     int
}

// MedicationCount is one bucket of the medication aggregation.
type MedicationCount struct {
	Medication string `bson:"_id" json:"medication"`
	Count      int    `bson:"count" json:"count"`
}

// PrescriptionStats summarizes prescriptions in one patient or doctor scope.
type PrescriptionStats struct {
	Total        int               `bson:"total" json:"totalPrescriptions"`
	Active       int               `bson:"active" json:"activePrescriptions"`
	Completed    int               `bson:"completed" json:"completedPrescriptions"`
	Expired      int               `bson:"expired" json:"expiredPrescriptions"`
	Cancelled    int               `bson:"cancelled" json:"cancelledPrescriptions"`
	ByMedication []MedicationCount `json:"byMedication"`
}

// PrescriptionRepository defines data access for prescription documents.
type PrescriptionRepository interface {
	Create(prescription *models.Prescription) error
	Update(prescription *models.Prescription) error
	Delete(id string) error
	GetByID(id string) (*models.Prescription, error)
	GetAll(filter PrescriptionFilter) ([]models.Prescription, int64, error)
	UpdateStatus(id, status string) error
	ExpireOverdue() (int64, error)
	Stats(patientID, doctorID string) (*PrescriptionStats, error)
}
