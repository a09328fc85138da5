package models

// Prescription is the stored reference to a scanned prescription document.
type Prescription struct {
	PrescriptionID string `bson:"prescriptionId" json:"prescriptionId"`
	FilePath       string `bson:"filePath" json:"filePath"`
	PatientName    string `bson:"patientName" json:"patientName"`
	DoctorName     string `bson:"doctorName" json:"doctorName"`
}
