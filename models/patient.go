package models

import "time"

// MedicalHistoryEntry is one dated disease entry in a patient's history.
type MedicalHistoryEntry struct {
	ID      string    `bson:"id" json:"id"`
	Disease string    `bson:"disease" json:"disease"`
	Date    time.Time `bson:"date" json:"date"`
}

// FileRecord is the stored metadata of an uploaded patient file. Only the
// location and name are kept; the bytes live in external storage.
type FileRecord struct {
	ID        string    `bson:"id" json:"id"`
	URL       string    `bson:"url" json:"url"`
	FileName  string    `bson:"fileName" json:"fileName"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Patient represents a patient account.
type Patient struct {
	ID                 string                `bson:"id" json:"id"`
	Username           string                `bson:"username" json:"username"`
	Email              string                `bson:"email" json:"email"`
	PasswordHash       string                `bson:"passwordHash" json:"-"`
	Age                int                   `bson:"age" json:"age"`
	Height             float64               `bson:"height" json:"height"`
	Weight             float64               `bson:"weight" json:"weight"`
	MedicalHistory     []MedicalHistoryEntry `bson:"medicalHistory" json:"medicalHistory"`
	Allergies          []string              `bson:"allergies" json:"allergies"`
	CurrentMedications []string              `bson:"currentMedications" json:"currentMedications"`
	HandwrittenNotes   []FileRecord          `bson:"handwrittenNotes" json:"handwrittenNotes,omitempty"`
	Reports            []FileRecord          `bson:"reports" json:"reports,omitempty"`
	AssignedDoctor     string                `bson:"assignedDoctor,omitempty" json:"assignedDoctor,omitempty"`
	CreatedAt          time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// File type discriminators for patient file records.
const (
	FileTypeHandwrittenNote = "handwrittenNotes"
	FileTypeReport          = "reports"
)
