package prescription

import (
	"fmt"
	"time"

	prescriptionRepo "healthhub/database/repository/prescription"
	"healthhub/models"

	"github.com/google/uuid"
)

// defaultValidity is how long a prescription stays active when the issuing
// doctor does not set an expiry.
const defaultValidity = 30 * 24 * time.Hour

// PrescriptionService defines business logic for prescriptions.
type PrescriptionService interface {
	Create(prescription models.Prescription) (*models.Prescription, error)
	Update(prescription models.Prescription) (*models.Prescription, error)
	GetByID(prescriptionID string) (*models.Prescription, error)
	List(filter prescriptionRepo.PrescriptionFilter) ([]models.Prescription, int64, error)
	Cancel(prescriptionID string) error
	ExpireOverdue() (int64, error)
	Stats(patientID, doctorID string) (*prescriptionRepo.PrescriptionStats, error)
}

// DefaultPrescriptionService is the production implementation.
type DefaultPrescriptionService struct {
	Repo prescriptionRepo.PrescriptionRepository
}

// Create validates and persists a new prescription.
func (s *DefaultPrescriptionService) Create(prescription models.Prescription) (*models.Prescription, error) {
	if prescription.PatientID == "" || prescription.DoctorID == "" {
		return nil, fmt.Errorf("patient and doctor are required")
	}
	if len(prescription.Medications) == 0 {
		return nil, fmt.Errorf("at least one medication is required")
	}
	for i, med := range prescription.Medications {
		if med.Name == "" {
			return nil, fmt.Errorf("medication %d is missing a name", i+1)
		}
	}

	prescription.ID = uuid.New().String()
	prescription.Status = "active"
	if prescription.PrescriptionDate.IsZero() {
		prescription.PrescriptionDate = time.Now()
	}
	if prescription.ExpiryDate.IsZero() {
		prescription.ExpiryDate = prescription.PrescriptionDate.Add(defaultValidity)
	}
	prescription.TotalCost = totalCost(prescription.Medications)

	if err := s.Repo.Create(&prescription); err != nil {
		return nil, err
	}
	return &prescription, nil
}

func totalCost(medications []models.Medication) float64 {
	var total float64
	for _, med := range medications {
		total += med.Cost * float64(med.Quantity)
	}
	return total
}

// Update merges allowed updates onto the stored prescription. Completed and
// expired prescriptions are immutable.
func (s *DefaultPrescriptionService) Update(prescription models.Prescription) (*models.Prescription, error) {
	existing, err := s.GetByID(prescription.ID)
	if err != nil {
		return nil, err
	}
	if existing.Status != "active" {
		return nil, fmt.Errorf("only active prescriptions can be updated")
	}

	if prescription.Diagnosis != "" {
		existing.Diagnosis = prescription.Diagnosis
	}
	if len(prescription.Medications) > 0 {
		existing.Medications = prescription.Medications
		existing.TotalCost = totalCost(prescription.Medications)
	}
	if prescription.Pharmacy != nil {
		existing.Pharmacy = prescription.Pharmacy
	}
	if prescription.Notes != "" {
		existing.Notes = prescription.Notes
	}
	if !prescription.ExpiryDate.IsZero() {
		existing.ExpiryDate = prescription.ExpiryDate
	}

	if err := s.Repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// GetByID retrieves one prescription.
func (s *DefaultPrescriptionService) GetByID(prescriptionID string) (*models.Prescription, error) {
	prescription, err := s.Repo.GetByID(prescriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	if prescription == nil {
		return nil, fmt.Errorf("prescription with id %s not found", prescriptionID)
	}
	return prescription, nil
}

// List returns prescriptions matching the filter.
func (s *DefaultPrescriptionService) List(filter prescriptionRepo.PrescriptionFilter) ([]models.Prescription, int64, error) {
	return s.Repo.GetAll(filter)
}

// Cancel marks an active prescription cancelled.
func (s *DefaultPrescriptionService) Cancel(prescriptionID string) error {
	existing, err := s.GetByID(prescriptionID)
	if err != nil {
		return err
	}
	if existing.Status != "active" {
		return fmt.Errorf("only active prescriptions can be cancelled")
	}
	return s.Repo.UpdateStatus(prescriptionID, "cancelled")
}

// ExpireOverdue sweeps active prescriptions past their expiry date.
func (s *DefaultPrescriptionService) ExpireOverdue() (int64, error) {
	return s.Repo.ExpireOverdue()
}

// Stats returns aggregate prescription numbers scoped to a patient or doctor.
func (s *DefaultPrescriptionService) Stats(patientID, doctorID string) (*prescriptionRepo.PrescriptionStats, error) {
	return s.Repo.Stats(patientID, doctorID)
}
