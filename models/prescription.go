package models

import "time"

// Dosage describes how much of a medication is taken at once.
type Dosage struct {
	Amount float64 `bson:"amount" json:"amount"`
	Unit   string  `bson:"unit" json:"unit"`
	Form   string  `bson:"form,omitempty" json:"form,omitempty"`
}

// MedicationDuration is how long a medication course runs.
type MedicationDuration struct {
	Value int    `bson:"value" json:"value"`
	Unit  string `bson:"unit" json:"unit"` // days, weeks or months
}

// Medication is one prescribed drug.
type Medication struct {
	Name                string             `bson:"name" json:"name"`
	GenericName         string             `bson:"genericName,omitempty" json:"genericName,omitempty"`
	Dosage              Dosage             `bson:"dosage" json:"dosage"`
	Frequency           string             `bson:"frequency" json:"frequency"`
	Duration            MedicationDuration `bson:"duration" json:"duration"`
	Instructions        string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	SpecialInstructions []string           `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
	Quantity            int                `bson:"quantity" json:"quantity"`
	Refills             int                `bson:"refills" json:"refills"`
	Cost                float64            `bson:"cost,omitempty" json:"cost,omitempty"`
	IsGeneric           bool               `bson:"isGeneric" json:"isGeneric"`
	Warnings            []string           `bson:"warnings,omitempty" json:"warnings,omitempty"`
}

// Pharmacy identifies where a prescription is filled.
type Pharmacy struct {
	Name    string `bson:"name,omitempty" json:"name,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
}

// Prescription is a set of medications issued after a consultation.
type Prescription struct {
	ID               string       `bson:"id" json:"id"`
	PatientID        string       `bson:"patient" json:"patient"`
	DoctorID         string       `bson:"doctor" json:"doctor"`
	AppointmentID    string       `bson:"appointment,omitempty" json:"appointment,omitempty"`
	PrescriptionDate time.Time    `bson:"prescriptionDate" json:"prescriptionDate"`
	Diagnosis        string       `bson:"diagnosis" json:"diagnosis"`
	Medications      []Medication `bson:"medications" json:"medications"`
	TotalCost        float64      `bson:"totalCost,omitempty" json:"totalCost,omitempty"`
	Pharmacy         *Pharmacy    `bson:"pharmacy,omitempty" json:"pharmacy,omitempty"`
	Status           string       `bson:"status" json:"status"` // active, completed, cancelled or expired
	ExpiryDate       time.Time    `bson:"expiryDate" json:"expiryDate"`
	Notes            string       `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time    `bson:"updatedAt" json:"updatedAt"`
}
