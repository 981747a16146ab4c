package models

// Address is a postal address embedded in users and hospitals.
type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipCode" json:"zipCode"`
	Country string `bson:"country" json:"country"`
}

// Coordinates holds a geographic point as separate lat/lng fields.
type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// ContactInfo groups the ways to reach a hospital.
type ContactInfo struct {
	Phone     string `bson:"phone" json:"phone"`
	Email     string `bson:"email" json:"email"`
	Website   string `bson:"website,omitempty" json:"website,omitempty"`
	Emergency string `bson:"emergency,omitempty" json:"emergency,omitempty"`
}

// Pagination is the standard list-response envelope.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}
