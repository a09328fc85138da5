package models

import "time"

// Doctor represents a doctor account with its embedded clinic schedules.
type Doctor struct {
	ID                string     `bson:"id" json:"id"`
	Username          string     `bson:"username" json:"username"`
	Email             string     `bson:"email" json:"email"`
	PasswordHash      string     `bson:"passwordHash" json:"-"`
	Specialization    string     `bson:"specialization" json:"specialization"`
	YearsOfExperience int        `bson:"yearsOfExperience" json:"yearsOfExperience"`
	College           string     `bson:"college" json:"college"`
	LicenseNumber     string     `bson:"licenseNumber" json:"licenseNumber"`
	Schedules         []Schedule `bson:"schedules" json:"schedules"`
	PatientIDs        []string   `bson:"patientIds" json:"patientIds,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// DoctorPublic is the view of a doctor exposed to patients: no password hash,
// no patient roster, no schedules.
type DoctorPublic struct {
	ID                string `bson:"id" json:"id"`
	Username          string `bson:"username" json:"username"`
	Email             string `bson:"email" json:"email"`
	Specialization    string `bson:"specialization" json:"specialization"`
	YearsOfExperience int    `bson:"yearsOfExperience" json:"yearsOfExperience"`
	College           string `bson:"college" json:"college"`
	LicenseNumber     string `bson:"licenseNumber" json:"licenseNumber"`
}

// DoctorPage is one page of doctor search results.
type DoctorPage struct {
	Doctors     []DoctorPublic `json:"doctors"`
	Total       int64          `json:"total"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
}
