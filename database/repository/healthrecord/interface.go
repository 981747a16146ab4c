package healthRecordRepo

import (
	"time"

	"healthhub/models"
)

// HealthRecordFilter narrows health record listings.
type HealthRecordFilter struct {
	PatientID  string
	RecordType string
	Page       int
	Limit      int
}

// RecordTypeCount is one bucket of the record type aggregation.
type RecordTypeCount struct {
	RecordType string `bson:"_id" json:"recordType"`
	Count      int    `bson:"count" json:"count"`
}

// HealthRecordStats summarizes one patient's record history.
type HealthRecordStats struct {
	TotalRecords int               `json:"totalRecords"`
	LatestRecord *time.Time        `json:"latestRecord,omitempty"`
	ByRecordType []RecordTypeCount `json:"byRecordType"`
}

// HealthRecordRepository defines data access for health record documents.
type HealthRecordRepository interface {
	Create(record *models.HealthRecord) error
	Update(record *models.HealthRecord) error
	Delete(id string) error
	GetByID(id string) (*models.HealthRecord, error)
	GetAll(filter HealthRecordFilter) ([]models.HealthRecord, int64, error)
	GetVitalsTimeline(patientID string, limit int) ([]models.HealthRecord, error)
	Stats(patientID string) (*HealthRecordStats, error)
}
