package hospitalRepo

import "healthhub/models"

// HospitalFilter narrows hospital listings.
type HospitalFilter struct {
	City      string
	State     string
	Type      string
	Specialty string
	Page      int
	Limit     int
}

// TypeCount is one bucket of a grouped hospital aggregation.
type TypeCount struct {
	Key   string `bson:"_id" json:"key"`
	Count int    `bson:"count" json:"count"`
}

// HospitalStats summarizes the active hospital population.
type HospitalStats struct {
	TotalHospitals int         `json:"totalHospitals"`
	AvgRating      float64     `json:"avgRating"`
	TotalReviews   int         `json:"totalReviews"`
	Types          []TypeCount `json:"types"`
	TopCities      []TypeCount `json:"topCities"`
}

// HospitalRepository defines data access for hospital documents.
type HospitalRepository interface {
	Create(hospital *models.Hospital) error
	Update(hospital *models.Hospital) error
	Delete(id string) error
	GetByID(id string) (*models.Hospital, error)
	GetAll(filter HospitalFilter) ([]models.Hospital, int64, error)
	Stats() (*HospitalStats, error)
}
