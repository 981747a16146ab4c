package doctor

import (
	"fmt"
	"time"

	doctorRepo "healthhub/database/repository/doctor"
	"healthhub/models"
	"healthhub/services/scheduling"

	"github.com/google/uuid"
)

// DoctorService defines business logic for doctor management.
type DoctorService interface {
	Create(doctor models.Doctor) (*models.Doctor, error)
	Update(doctor models.Doctor) (*models.Doctor, error)
	Delete(doctorID string) error
	GetByID(doctorID string) (*models.Doctor, error)
	List(filter doctorRepo.DoctorFilter) ([]models.Doctor, int64, error)
	GetByHospital(hospitalID, specialization string) ([]models.Doctor, error)
	SetAvailability(doctorID string, availability models.WeeklyAvailability) (*models.Doctor, error)
	Stats() (*doctorRepo.DoctorStats, error)
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo doctorRepo.DoctorRepository
}

// Create validates and persists a new doctor profile.
func (s *DefaultDoctorService) Create(doctor models.Doctor) (*models.Doctor, error) {
	if doctor.Name == "" || doctor.Email == "" || doctor.LicenseNumber == "" {
		return nil, fmt.Errorf("doctor name, email and license number are required")
	}
	if err := validateAvailability(doctor.Availability); err != nil {
		return nil, err
	}

	doctor.ID = uuid.New().String()
	doctor.IsActive = true
	if err := s.Repo.Create(&doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	return &doctor, nil
}

// Update merges allowed updates onto the stored profile.
func (s *DefaultDoctorService) Update(doctor models.Doctor) (*models.Doctor, error) {
	existing, err := s.Repo.GetByID(doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("doctor with id %s not found", doctor.ID)
	}

	if doctor.Name != "" {
		existing.Name = doctor.Name
	}
	if doctor.Phone != "" {
		existing.Phone = doctor.Phone
	}
	if doctor.Specialization != "" {
		existing.Specialization = doctor.Specialization
	}
	if doctor.Department != "" {
		existing.Department = doctor.Department
	}
	if doctor.HospitalID != "" {
		existing.HospitalID = doctor.HospitalID
	}
	if doctor.Experience > 0 {
		existing.Experience = doctor.Experience
	}
	if doctor.ConsultationFee > 0 {
		existing.ConsultationFee = doctor.ConsultationFee
	}
	if doctor.Bio != "" {
		existing.Bio = doctor.Bio
	}
	if len(doctor.Education) > 0 {
		existing.Education = doctor.Education
	}
	if len(doctor.Certifications) > 0 {
		existing.Certifications = doctor.Certifications
	}
	if len(doctor.Languages) > 0 {
		existing.Languages = doctor.Languages
	}
	if len(doctor.Availability) > 0 {
		if err := validateAvailability(doctor.Availability); err != nil {
			return nil, err
		}
		existing.Availability = doctor.Availability
	}

	if err := s.Repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}
	return existing, nil
}

// Delete deactivates a doctor profile. Appointment history stays intact, so
// the record is soft-deleted rather than removed.
func (s *DefaultDoctorService) Delete(doctorID string) error {
	existing, err := s.Repo.GetByID(doctorID)
	if err != nil {
		return fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("doctor with id %s not found", doctorID)
	}
	existing.IsActive = false
	existing.UpdatedAt = time.Now()
	if err := s.Repo.Update(existing); err != nil {
		return fmt.Errorf("failed to deactivate doctor: %w", err)
	}
	return nil
}

// GetByID retrieves one doctor profile.
func (s *DefaultDoctorService) GetByID(doctorID string) (*models.Doctor, error) {
	doctor, err := s.Repo.GetByID(doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	if doctor == nil {
		return nil, fmt.Errorf("doctor with id %s not found", doctorID)
	}
	return doctor, nil
}

// List returns active doctors matching the filter.
func (s *DefaultDoctorService) List(filter doctorRepo.DoctorFilter) ([]models.Doctor, int64, error) {
	return s.Repo.GetAll(filter)
}

// GetByHospital returns the active doctors of one hospital.
func (s *DefaultDoctorService) GetByHospital(hospitalID, specialization string) ([]models.Doctor, error) {
	return s.Repo.GetByHospital(hospitalID, specialization)
}

// SetAvailability replaces the doctor's weekly schedule template.
func (s *DefaultDoctorService) SetAvailability(doctorID string, availability models.WeeklyAvailability) (*models.Doctor, error) {
	existing, err := s.Repo.GetByID(doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("doctor with id %s not found", doctorID)
	}
	if err := validateAvailability(availability); err != nil {
		return nil, err
	}
	existing.Availability = availability
	if err := s.Repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}
	return existing, nil
}

// Stats returns aggregate numbers over active doctors.
func (s *DefaultDoctorService) Stats() (*doctorRepo.DoctorStats, error) {
	return s.Repo.Stats()
}

// validateAvailability rejects template entries whose clock strings are
// malformed or whose window is empty or inverted.
func validateAvailability(availability models.WeeklyAvailability) error {
	for day, entry := range availability {
		if !entry.IsAvailable {
			continue
		}
		start, err := scheduling.ParseClock(entry.StartTime)
		if err != nil {
			return fmt.Errorf("invalid start time for %s: %w", day, err)
		}
		end, err := scheduling.ParseClock(entry.EndTime)
		if err != nil {
			return fmt.Errorf("invalid end time for %s: %w", day, err)
		}
		if start >= end {
			return fmt.Errorf("start time must be before end time for %s", day)
		}
		if entry.SlotDurationMinutes < 0 {
			return fmt.Errorf("slot duration must be positive for %s", day)
		}
	}
	return nil
}
