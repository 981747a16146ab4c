package models

import "time"

// Measurement is a single vital-sign reading with its unit.
type Measurement struct {
	Value float64 `bson:"value" json:"value"`
	Unit  string  `bson:"unit,omitempty" json:"unit,omitempty"`
}

// BloodPressure is a systolic/diastolic reading.
type BloodPressure struct {
	Systolic  int    `bson:"systolic" json:"systolic"`
	Diastolic int    `bson:"diastolic" json:"diastolic"`
	Unit      string `bson:"unit,omitempty" json:"unit,omitempty"`
}

// VitalSigns groups the measurements taken during a visit.
type VitalSigns struct {
	BloodPressure    *BloodPressure `bson:"bloodPressure,omitempty" json:"bloodPressure,omitempty"`
	HeartRate        *Measurement   `bson:"heartRate,omitempty" json:"heartRate,omitempty"`
	Temperature      *Measurement   `bson:"temperature,omitempty" json:"temperature,omitempty"`
	Weight           *Measurement   `bson:"weight,omitempty" json:"weight,omitempty"`
	Height           *Measurement   `bson:"height,omitempty" json:"height,omitempty"`
	OxygenSaturation *Measurement   `bson:"oxygenSaturation,omitempty" json:"oxygenSaturation,omitempty"`
	RespiratoryRate  *Measurement   `bson:"respiratoryRate,omitempty" json:"respiratoryRate,omitempty"`
}

// RecordProvider identifies who produced a health record.
type RecordProvider struct {
	Name string `bson:"name" json:"name"`
	Type string `bson:"type" json:"type"` // hospital, clinic, laboratory, pharmacy, doctor or other
	ID   string `bson:"id,omitempty" json:"id,omitempty"`
}

// HealthRecord is one entry in a patient's longitudinal record.
type HealthRecord struct {
	ID          string         `bson:"id" json:"id"`
	PatientID   string         `bson:"patient" json:"patient"`
	RecordType  string         `bson:"recordType" json:"recordType"`
	Title       string         `bson:"title" json:"title"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	Date        time.Time      `bson:"date" json:"date"`
	Provider    RecordProvider `bson:"provider" json:"provider"`
	VitalSigns  *VitalSigns    `bson:"vitalSigns,omitempty" json:"vitalSigns,omitempty"`
	Attachments []Attachment   `bson:"attachments,omitempty" json:"attachments,omitempty"`
	Notes       string         `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}
