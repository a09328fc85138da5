package models

import "time"

// Pharmacist represents a pharmacist account.
type Pharmacist struct {
	ID                string    `bson:"id" json:"id"`
	Username          string    `bson:"username" json:"username"`
	Email             string    `bson:"email" json:"email"`
	PasswordHash      string    `bson:"passwordHash" json:"-"`
	YearsOfExperience int       `bson:"yearsOfExperience" json:"yearsOfExperience"`
	LicenseNumber     string    `bson:"licenseNumber" json:"licenseNumber"`
	Pharmacy          string    `bson:"pharmacy" json:"pharmacy"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}
