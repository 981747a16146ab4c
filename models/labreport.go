package models

import "time"

// Laboratory identifies the lab that produced a report.
type Laboratory struct {
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	License string `bson:"license,omitempty" json:"license,omitempty"`
}

// TestResult is the measured outcome of one lab test.
type TestResult struct {
	Value        string  `bson:"value" json:"value"`
	Unit         string  `bson:"unit,omitempty" json:"unit,omitempty"`
	NumericValue float64 `bson:"numericValue,omitempty" json:"numericValue,omitempty"`
}

// NormalRange bounds the expected result values for a test.
type NormalRange struct {
	Min  float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max  float64 `bson:"max,omitempty" json:"max,omitempty"`
	Unit string  `bson:"unit,omitempty" json:"unit,omitempty"`
}

// LabTest is one test contained in a report.
type LabTest struct {
	Name           string      `bson:"name" json:"name"`
	Code           string      `bson:"code,omitempty" json:"code,omitempty"`
	Result         TestResult  `bson:"result" json:"result"`
	NormalRange    NormalRange `bson:"normalRange,omitempty" json:"normalRange,omitempty"`
	IsAbnormal     bool        `bson:"isAbnormal" json:"isAbnormal"`
	Flag           string      `bson:"flag,omitempty" json:"flag,omitempty"`
	Interpretation string      `bson:"interpretation,omitempty" json:"interpretation,omitempty"`
}

// Specimen describes the collected sample.
type Specimen struct {
	Type           string    `bson:"type" json:"type"`
	CollectionDate time.Time `bson:"collectionDate" json:"collectionDate"`
	CollectionTime string    `bson:"collectionTime,omitempty" json:"collectionTime,omitempty"`
	Volume         string    `bson:"volume,omitempty" json:"volume,omitempty"`
	Condition      string    `bson:"condition,omitempty" json:"condition,omitempty"`
}

// Attachment is an uploaded document linked to a report. PublicID refers to
// the object in the external storage service.
type Attachment struct {
	PublicID   string    `bson:"publicId" json:"publicId"`
	FileName   string    `bson:"fileName" json:"fileName"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// LabReport is a laboratory report document.
type LabReport struct {
	ID            string       `bson:"id" json:"id"`
	PatientID     string       `bson:"patient" json:"patient"`
	DoctorID      string       `bson:"doctor" json:"doctor"`
	AppointmentID string       `bson:"appointment,omitempty" json:"appointment,omitempty"`
	Laboratory    Laboratory   `bson:"laboratory" json:"laboratory"`
	ReportNumber  string       `bson:"reportNumber" json:"reportNumber"`
	TestDate      time.Time    `bson:"testDate" json:"testDate"`
	ReportDate    time.Time    `bson:"reportDate" json:"reportDate"`
	TestType      string       `bson:"testType" json:"testType"`
	Tests         []LabTest    `bson:"tests" json:"tests"`
	Specimen      Specimen     `bson:"specimen" json:"specimen"`
	Attachments   []Attachment `bson:"attachments,omitempty" json:"attachments,omitempty"`
	Notes         string       `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time    `bson:"updatedAt" json:"updatedAt"`
}
