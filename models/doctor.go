package models

import "time"

// DayAvailability is one weekday entry of a doctor's schedule template.
// StartTime and EndTime are zero-padded local "HH:MM" strings.
type DayAvailability struct {
	IsAvailable         bool   `bson:"isAvailable" json:"isAvailable"`
	StartTime           string `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime             string `bson:"endTime,omitempty" json:"endTime,omitempty"`
	SlotDurationMinutes int    `bson:"slotDurationMinutes,omitempty" json:"slotDurationMinutes,omitempty"`
	MaxPatients         int    `bson:"maxPatients,omitempty" json:"maxPatients,omitempty"`
}

// WeeklyAvailability maps lowercase weekday names ("monday".."sunday") to
// their schedule template entries.
type WeeklyAvailability map[string]DayAvailability

// Education is one degree held by a doctor.
type Education struct {
	Degree      string `bson:"degree" json:"degree"`
	Institution string `bson:"institution" json:"institution"`
	Year        int    `bson:"year" json:"year"`
}

// Certification is a professional certification held by a doctor.
type Certification struct {
	Name             string     `bson:"name" json:"name"`
	IssuingAuthority string     `bson:"issuingAuthority,omitempty" json:"issuingAuthority,omitempty"`
	Year             int        `bson:"year,omitempty" json:"year,omitempty"`
	ExpiryDate       *time.Time `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
}

// Rating aggregates patient reviews.
type Rating struct {
	Average      float64 `bson:"average" json:"average"`
	TotalReviews int     `bson:"totalReviews" json:"totalReviews"`
}

// Doctor is a practicing physician attached to a hospital.
type Doctor struct {
	ID              string             `bson:"id" json:"id"`
	Name            string             `bson:"name" json:"name" binding:"required"`
	Email           string             `bson:"email" json:"email" binding:"required,email"`
	Phone           string             `bson:"phone" json:"phone"`
	Specialization  string             `bson:"specialization" json:"specialization"`
	HospitalID      string             `bson:"hospital" json:"hospital"`
	Department      string             `bson:"department" json:"department"`
	LicenseNumber   string             `bson:"licenseNumber" json:"licenseNumber"`
	Experience      int                `bson:"experience" json:"experience"`
	Education       []Education        `bson:"education,omitempty" json:"education,omitempty"`
	Certifications  []Certification    `bson:"certifications,omitempty" json:"certifications,omitempty"`
	Availability    WeeklyAvailability `bson:"availability,omitempty" json:"availability,omitempty"`
	ConsultationFee float64            `bson:"consultationFee" json:"consultationFee"`
	Rating          Rating             `bson:"rating" json:"rating"`
	Bio             string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Languages       []string           `bson:"languages,omitempty" json:"languages,omitempty"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	Verified        bool               `bson:"verified" json:"verified"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DoctorSummary is the doctor projection returned with availability queries.
type DoctorSummary struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Specialization  string  `json:"specialization"`
	ConsultationFee float64 `json:"consultationFee"`
}

// Summary builds the availability-response projection of a doctor.
func (d *Doctor) Summary() DoctorSummary {
	return DoctorSummary{
		ID:              d.ID,
		Name:            d.Name,
		Specialization:  d.Specialization,
		ConsultationFee: d.ConsultationFee,
	}
}
