package doctor

import (
	"fmt"
	"time"

	doctorRepo "carebridge/database/repository/doctor"
	patientRepo "carebridge/database/repository/patient"
	"carebridge/models"
	"carebridge/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// DoctorService covers the doctor portal: profile, patient roster and
// patient record editing.
type DoctorService interface {
	GetProfile(doctorID string) (*models.Doctor, error)
	UpdateProfile(doctorID string, updates bson.M) (*models.Doctor, error)
	GetPatients(doctorID string) ([]models.Patient, error)
	RemovePatient(doctorID, patientID string) error
	Search(searchType, query string) ([]models.DoctorPublic, error)

	AddAllergy(patientID, allergy string) (*models.Patient, error)
	RemoveAllergy(patientID, allergy string) (*models.Patient, error)
	AddMedication(patientID, medication string) (*models.Patient, error)
	RemoveMedication(patientID, medication string) (*models.Patient, error)
	AddMedicalHistory(patientID, disease string, date time.Time) (*models.Patient, error)
	DeleteMedicalHistory(patientID, entryID string) (*models.Patient, error)
}

// DefaultDoctorService is the production DoctorService.
type DefaultDoctorService struct {
	Repo     doctorRepo.DoctorRepository
	Patients patientRepo.PatientRepository
}

// profileProjection omits credentials from doctor profile reads.
var profileProjection = bson.M{"passwordHash": 0}

func (s *DefaultDoctorService) GetProfile(doctorID string) (*models.Doctor, error) {
	doctor, err := s.Repo.GetByIDWithProjection(doctorID, profileProjection)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor profile: %w", err)
	}
	if doctor == nil {
		return nil, utils.NotFoundError{Resource: "doctor"}
	}
	return doctor, nil
}

func (s *DefaultDoctorService) UpdateProfile(doctorID string, updates bson.M) (*models.Doctor, error) {
	// Credentials and identity never change through this path.
	delete(updates, "password")
	delete(updates, "passwordHash")
	delete(updates, "id")
	delete(updates, "email")
	if len(updates) == 0 {
		return nil, utils.ValidationError{Reason: "no updatable fields provided"}
	}

	if err := s.Repo.UpdateSetDocument(doctorID, updates); err != nil {
		return nil, utils.NotFoundError{Resource: "doctor"}
	}
	return s.GetProfile(doctorID)
}

// rosterProjection keeps patient file payloads out of roster listings.
var rosterProjection = bson.M{"passwordHash": 0, "handwrittenNotes": 0, "reports": 0}

func (s *DefaultDoctorService) GetPatients(doctorID string) ([]models.Patient, error) {
	doctor, err := s.Repo.GetByIDWithProjection(doctorID, bson.M{"id": 1, "patientIds": 1})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if doctor == nil {
		return nil, utils.NotFoundError{Resource: "doctor"}
	}
	if len(doctor.PatientIDs) == 0 {
		return []models.Patient{}, nil
	}

	patients, err := s.Patients.GetManyByIDs(doctor.PatientIDs, rosterProjection)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patients: %w", err)
	}
	return patients, nil
}

func (s *DefaultDoctorService) RemovePatient(doctorID, patientID string) error {
	if err := s.Repo.RemovePatient(doctorID, patientID); err != nil {
		return utils.NotFoundError{Resource: "doctor"}
	}
	// Clear the patient's assignment; the patient may already be deleted.
	_ = s.Patients.UpdateSetDocument(patientID, bson.M{"assignedDoctor": ""})
	return nil
}

func (s *DefaultDoctorService) Search(searchType, query string) ([]models.DoctorPublic, error) {
	if searchType != "username" && searchType != "specialization" {
		return nil, utils.ValidationError{Reason: "searchType must be username or specialization"}
	}
	doctors, err := s.Repo.Search(searchType, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	return doctors, nil
}

// getPatient loads a full patient record or reports NotFound.
func (s *DefaultDoctorService) getPatient(patientID string) (*models.Patient, error) {
	patient, err := s.Patients.GetByIDWithProjection(patientID, bson.M{"passwordHash": 0})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if patient == nil {
		return nil, utils.NotFoundError{Resource: "patient"}
	}
	return patient, nil
}

func (s *DefaultDoctorService) AddAllergy(patientID, allergy string) (*models.Patient, error) {
	if allergy == "" {
		return nil, utils.ValidationError{Reason: "allergy is required"}
	}
	patient, err := s.getPatient(patientID)
	if err != nil {
		return nil, err
	}
	for _, a := range patient.Allergies {
		if a == allergy {
			return nil, utils.ConflictError{Reason: "allergy already recorded"}
		}
	}
	if err := s.Patients.PushToArray(patientID, "allergies", allergy); err != nil {
		return nil, fmt.Errorf("failed to add allergy: %w", err)
	}
	return s.getPatient(patientID)
}

func (s *DefaultDoctorService) RemoveAllergy(patientID, allergy string) (*models.Patient, error) {
	if allergy == "" {
		return nil, utils.ValidationError{Reason: "allergy is required"}
	}
	patient, err := s.getPatient(patientID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, a := range patient.Allergies {
		if a == allergy {
			found = true
			break
		}
	}
	if !found {
		return nil, utils.NotFoundError{Resource: "allergy"}
	}
	if err := s.Patients.PullFromArray(patientID, "allergies", allergy); err != nil {
		return nil, fmt.Errorf("failed to remove allergy: %w", err)
	}
	return s.getPatient(patientID)
}

func (s *DefaultDoctorService) AddMedication(patientID, medication string) (*models.Patient, error) {
	if medication == "" {
		return nil, utils.ValidationError{Reason: "medication is required"}
	}
	patient, err := s.getPatient(patientID)
	if err != nil {
		return nil, err
	}
	for _, m := range patient.CurrentMedications {
		if m == medication {
			return nil, utils.ConflictError{Reason: "medication already recorded"}
		}
	}
	if err := s.Patients.PushToArray(patientID, "currentMedications", medication); err != nil {
		return nil, fmt.Errorf("failed to add medication: %w", err)
	}
	return s.getPatient(patientID)
}

func (s *DefaultDoctorService) RemoveMedication(patientID, medication string) (*models.Patient, error) {
	if medication == "" {
		return nil, utils.ValidationError{Reason: "medication is required"}
	}
	patient, err := s.getPatient(patientID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, m := range patient.CurrentMedications {
		if m == medication {
			found = true
			break
		}
	}
	if !found {
		return nil, utils.NotFoundError{Resource: "medication"}
	}
	if err := s.Patients.PullFromArray(patientID, "currentMedications", medication); err != nil {
		return nil, fmt.Errorf("failed to remove medication: %w", err)
	}
	return s.getPatient(patientID)
}

func (s *DefaultDoctorService) AddMedicalHistory(patientID, disease string, date time.Time) (*models.Patient, error) {
	if disease == "" {
		return nil, utils.ValidationError{Reason: "disease is required"}
	}
	if _, err := s.getPatient(patientID); err != nil {
		return nil, err
	}

	entry := models.MedicalHistoryEntry{
		ID:      uuid.New().String(),
		Disease: disease,
		Date:    date,
	}
	if err := s.Patients.PushToArray(patientID, "medicalHistory", entry); err != nil {
		return nil, fmt.Errorf("failed to add medical history: %w", err)
	}
	return s.getPatient(patientID)
}

func (s *DefaultDoctorService) DeleteMedicalHistory(patientID, entryID string) (*models.Patient, error) {
	if _, err := s.getPatient(patientID); err != nil {
		return nil, err
	}
	if err := s.Patients.PullFromArray(patientID, "medicalHistory", bson.M{"id": entryID}); err != nil {
		return nil, fmt.Errorf("failed to delete medical history: %w", err)
	}
	return s.getPatient(patientID)
}
