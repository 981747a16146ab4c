package labreport

import (
	"context"
	"fmt"
	"io"
	"time"

	labReportRepo "healthhub/database/repository/labreport"
	"healthhub/models"
	"healthhub/services/storage"

	"github.com/google/uuid"
)

// LabReportService defines business logic for laboratory reports.
type LabReportService interface {
	Create(report models.LabReport) (*models.LabReport, error)
	Update(report models.LabReport) (*models.LabReport, error)
	Delete(ctx context.Context, reportID string) error
	GetByID(reportID string) (*models.LabReport, error)
	List(filter labReportRepo.LabReportFilter) ([]models.LabReport, int64, error)
	AttachFile(ctx context.Context, reportID, fileName string, file io.Reader) (*models.Attachment, error)
	AttachmentURL(reportID, publicID string) (string, error)
	Stats(patientID, doctorID string) (*labReportRepo.LabReportStats, error)
}

// DefaultLabReportService is the production implementation.
type DefaultLabReportService struct {
	Repo    labReportRepo.LabReportRepository
	Storage storage.StorageService
}

// Create validates and persists a new lab report. Abnormal flags are derived
// from the normal range when the lab did not set them.
func (s *DefaultLabReportService) Create(report models.LabReport) (*models.LabReport, error) {
	if report.PatientID == "" || report.DoctorID == "" {
		return nil, fmt.Errorf("patient and doctor are required")
	}
	if report.ReportNumber == "" {
		return nil, fmt.Errorf("report number is required")
	}
	if len(report.Tests) == 0 {
		return nil, fmt.Errorf("at least one test is required")
	}

	report.ID = uuid.New().String()
	if report.ReportDate.IsZero() {
		report.ReportDate = time.Now()
	}
	for i := range report.Tests {
		flagAbnormal(&report.Tests[i])
	}

	if err := s.Repo.Create(&report); err != nil {
		return nil, err
	}
	return &report, nil
}

// flagAbnormal marks a test abnormal when its numeric result falls outside
// the stated normal range.
func flagAbnormal(test *models.LabTest) {
	if test.IsAbnormal || test.NormalRange == (models.NormalRange{}) {
		return
	}
	v := test.Result.NumericValue
	if v == 0 {
		return
	}
	switch {
	case test.NormalRange.Max > 0 && v > test.NormalRange.Max:
		test.IsAbnormal = true
		test.Flag = "high"
	case v < test.NormalRange.Min:
		test.IsAbnormal = true
		test.Flag = "low"
	}
}

// Update replaces the mutable fields of a stored report.
func (s *DefaultLabReportService) Update(report models.LabReport) (*models.LabReport, error) {
	existing, err := s.GetByID(report.ID)
	if err != nil {
		return nil, err
	}

	if len(report.Tests) > 0 {
		for i := range report.Tests {
			flagAbnormal(&report.Tests[i])
		}
		existing.Tests = report.Tests
	}
	if report.Notes != "" {
		existing.Notes = report.Notes
	}
	if report.TestType != "" {
		existing.TestType = report.TestType
	}
	if report.Laboratory.Name != "" {
		existing.Laboratory = report.Laboratory
	}

	if err := s.Repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a report and its stored attachments.
func (s *DefaultLabReportService) Delete(ctx context.Context, reportID string) error {
	existing, err := s.GetByID(reportID)
	if err != nil {
		return err
	}
	for _, attachment := range existing.Attachments {
		if err := s.Storage.Delete(ctx, attachment.PublicID); err != nil {
			return fmt.Errorf("failed to delete attachment %s: %w", attachment.PublicID, err)
		}
	}
	return s.Repo.Delete(reportID)
}

// GetByID retrieves one report.
func (s *DefaultLabReportService) GetByID(reportID string) (*models.LabReport, error) {
	report, err := s.Repo.GetByID(reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lab report: %w", err)
	}
	if report == nil {
		return nil, fmt.Errorf("lab report with id %s not found", reportID)
	}
	return report, nil
}

// List returns reports matching the filter.
func (s *DefaultLabReportService) List(filter labReportRepo.LabReportFilter) ([]models.LabReport, int64, error) {
	return s.Repo.GetAll(filter)
}

// AttachFile uploads a document and links it to the report.
func (s *DefaultLabReportService) AttachFile(ctx context.Context, reportID, fileName string, file io.Reader) (*models.Attachment, error) {
	if _, err := s.GetByID(reportID); err != nil {
		return nil, err
	}

	publicID, err := s.Storage.Upload(ctx, file, "labreports/"+reportID)
	if err != nil {
		return nil, err
	}

	attachment := models.Attachment{
		PublicID:   publicID,
		FileName:   fileName,
		UploadedAt: time.Now(),
	}
	if err := s.Repo.AddAttachment(reportID, attachment); err != nil {
		// The upload succeeded but the link failed; drop the orphan.
		_ = s.Storage.Delete(ctx, publicID)
		return nil, err
	}
	return &attachment, nil
}

// Stats returns aggregate lab report numbers scoped to a patient or doctor.
func (s *DefaultLabReportService) Stats(patientID, doctorID string) (*labReportRepo.LabReportStats, error) {
	return s.Repo.Stats(patientID, doctorID)
}

// AttachmentURL returns a signed, short-lived URL for one attachment.
func (s *DefaultLabReportService) AttachmentURL(reportID, publicID string) (string, error) {
	report, err := s.GetByID(reportID)
	if err != nil {
		return "", err
	}
	for _, attachment := range report.Attachments {
		if attachment.PublicID == publicID {
			return s.Storage.SecureDownloadURL(publicID, 15*time.Minute)
		}
	}
	return "", fmt.Errorf("attachment %s not found on lab report %s", publicID, reportID)
}
