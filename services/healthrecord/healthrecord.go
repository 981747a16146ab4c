package healthrecord

import (
	"fmt"
	"time"

	healthRecordRepo "healthhub/database/repository/healthrecord"
	"healthhub/models"

	"github.com/google/uuid"
)

// HealthRecordService defines business logic for patient health records.
type HealthRecordService interface {
	Create(record models.HealthRecord) (*models.HealthRecord, error)
	Update(record models.HealthRecord) (*models.HealthRecord, error)
	Delete(recordID string) error
	GetByID(recordID string) (*models.HealthRecord, error)
	List(filter healthRecordRepo.HealthRecordFilter) ([]models.HealthRecord, int64, error)
	VitalsTimeline(patientID string, limit int) ([]models.HealthRecord, error)
	Stats(patientID string) (*healthRecordRepo.HealthRecordStats, error)
}

// DefaultHealthRecordService is the production implementation.
type DefaultHealthRecordService struct {
	Repo healthRecordRepo.HealthRecordRepository
}

// Create validates and persists a new health record entry.
func (s *DefaultHealthRecordService) Create(record models.HealthRecord) (*models.HealthRecord, error) {
	if record.PatientID == "" {
		return nil, fmt.Errorf("patient is required")
	}
	if record.RecordType == "" || record.Title == "" {
		return nil, fmt.Errorf("record type and title are required")
	}
	if record.Provider.Name == "" {
		return nil, fmt.Errorf("record provider is required")
	}

	record.ID = uuid.New().String()
	if record.Date.IsZero() {
		record.Date = time.Now()
	}
	if err := s.Repo.Create(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Update merges allowed updates onto the stored record.
func (s *DefaultHealthRecordService) Update(record models.HealthRecord) (*models.HealthRecord, error) {
	existing, err := s.GetByID(record.ID)
	if err != nil {
		return nil, err
	}

	if record.Title != "" {
		existing.Title = record.Title
	}
	if record.Description != "" {
		existing.Description = record.Description
	}
	if record.VitalSigns != nil {
		existing.VitalSigns = record.VitalSigns
	}
	if record.Notes != "" {
		existing.Notes = record.Notes
	}
	if len(record.Attachments) > 0 {
		existing.Attachments = record.Attachments
	}

	if err := s.Repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a health record entry.
func (s *DefaultHealthRecordService) Delete(recordID string) error {
	if _, err := s.GetByID(recordID); err != nil {
		return err
	}
	return s.Repo.Delete(recordID)
}

// GetByID retrieves one record.
func (s *DefaultHealthRecordService) GetByID(recordID string) (*models.HealthRecord, error) {
	record, err := s.Repo.GetByID(recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get health record: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("health record with id %s not found", recordID)
	}
	return record, nil
}

// List returns records matching the filter.
func (s *DefaultHealthRecordService) List(filter healthRecordRepo.HealthRecordFilter) ([]models.HealthRecord, int64, error) {
	return s.Repo.GetAll(filter)
}

// VitalsTimeline returns the patient's recent vital sign readings.
func (s *DefaultHealthRecordService) VitalsTimeline(patientID string, limit int) ([]models.HealthRecord, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient is required")
	}
	return s.Repo.GetVitalsTimeline(patientID, limit)
}

// Stats returns aggregate record numbers for one patient.
func (s *DefaultHealthRecordService) Stats(patientID string) (*healthRecordRepo.HealthRecordStats, error) {
	return s.Repo.Stats(patientID)
}
