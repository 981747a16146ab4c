package models

import "time"

// User roles.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// EmergencyContact is the person to notify for a patient.
type EmergencyContact struct {
	Name         string `bson:"name" json:"name"`
	Relationship string `bson:"relationship" json:"relationship"`
	PhoneNumber  string `bson:"phoneNumber" json:"phoneNumber"`
}

// MedicationEntry is a currently taken medication in a patient's history.
type MedicationEntry struct {
	Name      string `bson:"name" json:"name"`
	Dosage    string `bson:"dosage,omitempty" json:"dosage,omitempty"`
	Frequency string `bson:"frequency,omitempty" json:"frequency,omitempty"`
}

// SurgeryEntry is a past procedure in a patient's history.
type SurgeryEntry struct {
	Procedure string    `bson:"procedure" json:"procedure"`
	Date      time.Time `bson:"date,omitempty" json:"date,omitempty"`
	Hospital  string    `bson:"hospital,omitempty" json:"hospital,omitempty"`
}

// MedicalHistory is the free-form clinical background embedded in a user.
type MedicalHistory struct {
	Allergies         []string          `bson:"allergies,omitempty" json:"allergies,omitempty"`
	ChronicConditions []string          `bson:"chronicConditions,omitempty" json:"chronicConditions,omitempty"`
	Medications       []MedicationEntry `bson:"medications,omitempty" json:"medications,omitempty"`
	Surgeries         []SurgeryEntry    `bson:"surgeries,omitempty" json:"surgeries,omitempty"`
}

// User represents a platform account: patient, doctor or admin.
type User struct {
	ID               string           `bson:"id" json:"id"`
	FirstName        string           `bson:"firstName" json:"firstName" binding:"required"`
	LastName         string           `bson:"lastName" json:"lastName" binding:"required"`
	Email            string           `bson:"email" json:"email" binding:"required,email"`
	PasswordHash     string           `bson:"passwordHash" json:"-"`
	PhoneNumber      string           `bson:"phoneNumber" json:"phoneNumber"`
	DateOfBirth      time.Time        `bson:"dateOfBirth" json:"dateOfBirth"`
	Gender           string           `bson:"gender" json:"gender"`
	BloodGroup       string           `bson:"bloodGroup" json:"bloodGroup"`
	Address          Address          `bson:"address" json:"address"`
	EmergencyContact EmergencyContact `bson:"emergencyContact" json:"emergencyContact"`
	MedicalHistory   MedicalHistory   `bson:"medicalHistory,omitempty" json:"medicalHistory,omitempty"`
	ProfilePicture   string           `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Role             string           `bson:"role" json:"role"`
	IsActive         bool             `bson:"isActive" json:"isActive"`
	TokenHash        string           `bson:"tokenHash,omitempty" json:"-"`
	FCMToken         string           `bson:"fcmToken,omitempty" json:"-"`
	LastLogin        *time.Time       `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt        time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile strips credentials and internal fields for API responses.
func (u *User) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":             u.ID,
		"firstName":      u.FirstName,
		"lastName":       u.LastName,
		"email":          u.Email,
		"role":           u.Role,
		"profilePicture": u.ProfilePicture,
	}
}
