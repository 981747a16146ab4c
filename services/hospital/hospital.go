package hospital

import (
	"fmt"
	"sort"

	hospitalRepo "healthhub/database/repository/hospital"
	"healthhub/models"

	"github.com/google/uuid"
)

// HospitalService defines business logic for hospital management.
type HospitalService interface {
	Create(hospital models.Hospital) (*models.Hospital, error)
	Update(hospital models.Hospital) (*models.Hospital, error)
	Delete(hospitalID string) error
	GetByID(hospitalID string) (*models.Hospital, error)
	List(filter hospitalRepo.HospitalFilter) ([]models.Hospital, int64, error)
	Nearby(lat, lng, radiusKm float64) ([]models.Hospital, error)
	Stats() (*hospitalRepo.HospitalStats, error)
}

// DefaultHospitalService is the production implementation.
type DefaultHospitalService struct {
	Repo hospitalRepo.HospitalRepository
}

// Create validates and persists a new hospital.
func (s *DefaultHospitalService) Create(hospital models.Hospital) (*models.Hospital, error) {
	if hospital.Name == "" || hospital.RegistrationNumber == "" {
		return nil, fmt.Errorf("hospital name and registration number are required")
	}
	hospital.ID = uuid.New().String()
	hospital.IsActive = true
	if err := s.Repo.Create(&hospital); err != nil {
		return nil, fmt.Errorf("failed to create hospital: %w", err)
	}
	return &hospital, nil
}

// Update merges allowed updates onto the stored hospital.
func (s *DefaultHospitalService) Update(hospital models.Hospital) (*models.Hospital, error) {
	existing, err := s.Repo.GetByID(hospital.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hospital: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("hospital with id %s not found", hospital.ID)
	}

	if hospital.Name != "" {
		existing.Name = hospital.Name
	}
	if hospital.Type != "" {
		existing.Type = hospital.Type
	}
	if hospital.Address != (models.Address{}) {
		existing.Address = hospital.Address
	}
	if hospital.Contact != (models.ContactInfo{}) {
		existing.Contact = hospital.Contact
	}
	if len(hospital.Specialties) > 0 {
		existing.Specialties = hospital.Specialties
	}
	if len(hospital.Departments) > 0 {
		existing.Departments = hospital.Departments
	}
	if len(hospital.Facilities) > 0 {
		existing.Facilities = hospital.Facilities
	}
	if len(hospital.Services) > 0 {
		existing.Services = hospital.Services
	}
	if len(hospital.OperatingHours) > 0 {
		existing.OperatingHours = hospital.OperatingHours
	}
	if hospital.Capacity != (models.Capacity{}) {
		existing.Capacity = hospital.Capacity
	}
	if hospital.Description != "" {
		existing.Description = hospital.Description
	}

	if err := s.Repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update hospital: %w", err)
	}
	return existing, nil
}

// Delete deactivates a hospital without removing its record.
func (s *DefaultHospitalService) Delete(hospitalID string) error {
	existing, err := s.Repo.GetByID(hospitalID)
	if err != nil {
		return fmt.Errorf("failed to fetch hospital: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("hospital with id %s not found", hospitalID)
	}
	existing.IsActive = false
	if err := s.Repo.Update(existing); err != nil {
		return fmt.Errorf("failed to deactivate hospital: %w", err)
	}
	return nil
}

// GetByID retrieves one hospital.
func (s *DefaultHospitalService) GetByID(hospitalID string) (*models.Hospital, error) {
	hospital, err := s.Repo.GetByID(hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	if hospital == nil {
		return nil, fmt.Errorf("hospital with id %s not found", hospitalID)
	}
	return hospital, nil
}

// List returns active hospitals matching the filter.
func (s *DefaultHospitalService) List(filter hospitalRepo.HospitalFilter) ([]models.Hospital, int64, error) {
	return s.Repo.GetAll(filter)
}

// Nearby returns active hospitals within radiusKm of the given point,
// closest first, with the computed distance populated on each result.
func (s *DefaultHospitalService) Nearby(lat, lng, radiusKm float64) ([]models.Hospital, error) {
	if radiusKm <= 0 {
		radiusKm = 25
	}

	hospitals, _, err := s.Repo.GetAll(hospitalRepo.HospitalFilter{Limit: 500})
	if err != nil {
		return nil, fmt.Errorf("failed to load hospitals: %w", err)
	}

	var nearby []models.Hospital
	for i := range hospitals {
		h := hospitals[i]
		h.Distance = h.DistanceFrom(lat, lng)
		if h.Distance <= radiusKm {
			nearby = append(nearby, h)
		}
	}
	sort.Slice(nearby, func(i, j int) bool { return nearby[i].Distance < nearby[j].Distance })
	return nearby, nil
}

// Stats returns aggregate numbers over active hospitals.
func (s *DefaultHospitalService) Stats() (*hospitalRepo.HospitalStats, error) {
	return s.Repo.Stats()
}
