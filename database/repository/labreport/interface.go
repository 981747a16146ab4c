package labReportRepo

import (
	"time"

	"healthhub/models"
)

// LabReportFilter narrows lab report listings.
type LabReportFilter struct {
	PatientID string
	DoctorID  string
	TestType  string
	Page      int
	Limit     int
}

// LabBucketCount is one bucket of a grouping aggregation over lab reports.
type LabBucketCount struct {
	Key   string `bson:"_id" json:"key"`
	Count int    `bson:"count" json:"count"`
}

// LabReportStats summarizes lab reports in one patient or doctor scope.
type LabReportStats struct {
	TotalReports int              `json:"totalReports"`
	LatestReport *time.Time       `json:"latestReport,omitempty"`
	ByTestType   []LabBucketCount `json:"byTestType"`
	ByLaboratory []LabBucketCount `json:"byLaboratory"`
}

// LabReportRepository defines data access for lab report documents.
type LabReportRepository interface {
	Create(report *models.LabReport) error
	Update(report *models.LabReport) error
	Delete(id string) error
	GetByID(id string) (*models.LabReport, error)
	GetAll(filter LabReportFilter) ([]models.LabReport, int64, error)
	AddAttachment(id string, attachment models.Attachment) error
	RemoveAttachment(id, publicID string) error
	Stats(patientID, doctorID string) (*LabReportStats, error)
}
