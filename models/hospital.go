package models

import (
	"math"
	"time"
)

// Department is a clinical department offered by a hospital.
type Department struct {
	Name        string `bson:"name" json:"name"`
	IsAvailable bool   `bson:"isAvailable" json:"isAvailable"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	HeadDoctor  string `bson:"headDoctor,omitempty" json:"headDoctor,omitempty"`
}

// Facility is an amenity or unit a hospital provides.
type Facility struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	IsAvailable bool   `bson:"isAvailable" json:"isAvailable"`
}

// HospitalService is a billable service a hospital offers.
type HospitalService struct {
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Cost        float64 `bson:"cost,omitempty" json:"cost,omitempty"`
	IsAvailable bool    `bson:"isAvailable" json:"isAvailable"`
}

// Capacity tracks hospital bed counts.
type Capacity struct {
	TotalBeds     int `bson:"totalBeds" json:"totalBeds"`
	AvailableBeds int `bson:"availableBeds" json:"availableBeds"`
	ICUBeds       int `bson:"icuBeds" json:"icuBeds"`
	EmergencyBeds int `bson:"emergencyBeds" json:"emergencyBeds"`
}

// OperatingDay is one weekday entry of a hospital's opening hours.
type OperatingDay struct {
	Open   string `bson:"open,omitempty" json:"open,omitempty"`
	Close  string `bson:"close,omitempty" json:"close,omitempty"`
	IsOpen bool   `bson:"isOpen" json:"isOpen"`
}

// HospitalRatings holds per-aspect review averages.
type HospitalRatings struct {
	Overall      float64 `bson:"overall" json:"overall"`
	Cleanliness  float64 `bson:"cleanliness" json:"cleanliness"`
	Staff        float64 `bson:"staff" json:"staff"`
	Treatment    float64 `bson:"treatment" json:"treatment"`
	TotalReviews int     `bson:"totalReviews" json:"totalReviews"`
}

// Hospital is a care facility document.
type Hospital struct {
	ID                 string                  `bson:"id" json:"id"`
	Name               string                  `bson:"name" json:"name" binding:"required"`
	Type               string                  `bson:"type" json:"type"`
	RegistrationNumber string                  `bson:"registrationNumber" json:"registrationNumber"`
	Description        string                  `bson:"description,omitempty" json:"description,omitempty"`
	Address            Address                 `bson:"address" json:"address"`
	Contact            ContactInfo             `bson:"contact" json:"contact"`
	Coordinates        Coordinates             `bson:"coordinates" json:"coordinates"`
	Specialties        []string                `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Departments        []Department            `bson:"departments,omitempty" json:"departments,omitempty"`
	Facilities         []Facility              `bson:"facilities,omitempty" json:"facilities,omitempty"`
	Services           []HospitalService       `bson:"services,omitempty" json:"services,omitempty"`
	Capacity           Capacity                `bson:"capacity" json:"capacity"`
	OperatingHours     map[string]OperatingDay `bson:"operatingHours,omitempty" json:"operatingHours,omitempty"`
	EmergencyServices  bool                    `bson:"emergencyServices" json:"emergencyServices"`
	Ratings            HospitalRatings         `bson:"ratings" json:"ratings"`
	IsActive           bool                    `bson:"isActive" json:"isActive"`
	Verified           bool                    `bson:"verified" json:"verified"`
	CreatedAt          time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time               `bson:"updatedAt" json:"updatedAt"`

	// Distance in km from a caller-supplied point, populated only on
	// location-filtered queries; never persisted.
	Distance float64 `bson:"-" json:"distance,omitempty"`
}

// DistanceFrom returns the great-circle distance in kilometers between the
// hospital and the given point (haversine).
func (h *Hospital) DistanceFrom(lat, lng float64) float64 {
	const earthRadiusKm = 6371
	dLat := (lat - h.Coordinates.Latitude) * math.Pi / 180
	dLng := (lng - h.Coordinates.Longitude) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(h.Coordinates.Latitude*math.Pi/180)*math.Cos(lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
