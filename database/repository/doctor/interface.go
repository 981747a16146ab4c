package doctorRepo

import (
	"healthhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// DoctorFilter narrows doctor listings.
type DoctorFilter struct {
	HospitalID     string
	Specialization string
	Page           int
	Limit          int
}

// SpecializationCount is one bucket of the doctor stats aggregation.
type SpecializationCount struct {
	Specialization string `bson:"_id" json:"specialization"`
	Count          int    `bson:"count" json:"count"`
}

// DoctorStats summarizes the active doctor population.
type DoctorStats struct {
	TotalDoctors    int                   `json:"totalDoctors"`
	AvgExperience   float64               `json:"avgExperience"`
	AvgRating       float64               `json:"avgRating"`
	TotalReviews    int                   `json:"totalReviews"`
	Specializations []SpecializationCount `json:"specializations"`
}

// DoctorRepository defines data access for doctor documents.
type DoctorRepository interface {
	Create(doctor *models.Doctor) error
	Update(doctor *models.Doctor) error
	Delete(id string) error
	GetByID(id string) (*models.Doctor, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.Doctor, error)
	GetAll(filter DoctorFilter) ([]models.Doctor, int64, error)
	GetByHospital(hospitalID, specialization string) ([]models.Doctor, error)
	Stats() (*DoctorStats, error)
}
