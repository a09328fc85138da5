package patient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	doctorRepo "carebridge/database/repository/doctor"
	patientRepo "carebridge/database/repository/patient"
	"carebridge/models"
	"carebridge/services/scheduling"
	"carebridge/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// FileUpload is one file metadata entry submitted by a client.
type FileUpload struct {
	URL      string `json:"url" binding:"required"`
	FileName string `json:"fileName" binding:"required"`
}

// ProfileUpdate carries the patient-editable profile fields.
type ProfileUpdate struct {
	Age                int                          `json:"age"`
	Height             float64                      `json:"height"`
	Weight             float64                      `json:"weight"`
	MedicalHistory     []models.MedicalHistoryEntry `json:"medicalHistory,omitempty"`
	Allergies          []string                     `json:"allergies,omitempty"`
	CurrentMedications []string                     `json:"currentMedications,omitempty"`
}

// PatientService covers the patient portal: profile, files and doctor
// discovery.
type PatientService interface {
	GetProfile(patientID string) (*models.Patient, error)
	UpdateProfile(patientID string, update ProfileUpdate) (*models.Patient, error)

	GetFiles(patientID, fileType string) ([]models.FileRecord, error)
	UploadFiles(patientID, fileType string, files []FileUpload) error
	DeleteFile(patientID, fileType, fileID string) error

	GetAllDoctors(page, limit int) (*models.DoctorPage, error)
	GetDoctorDetails(doctorID string) (*models.DoctorPublic, error)
	GetDoctorSchedules(doctorID string, now time.Time) ([]models.Schedule, error)
}

// DefaultPatientService is the production PatientService.
type DefaultPatientService struct {
	Repo    patientRepo.PatientRepository
	Doctors doctorRepo.DoctorRepository
	// Cache is optional; doctor details are served from Mongo when nil.
	Cache *redis.Client
}

func (s *DefaultPatientService) GetProfile(patientID string) (*models.Patient, error) {
	patient, err := s.Repo.GetByIDWithProjection(patientID, bson.M{"passwordHash": 0})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient profile: %w", err)
	}
	if patient == nil {
		return nil, utils.NotFoundError{Resource: "patient"}
	}
	return patient, nil
}

func (s *DefaultPatientService) UpdateProfile(patientID string, update ProfileUpdate) (*models.Patient, error) {
	updateDoc := bson.M{
		"age":    update.Age,
		"height": update.Height,
		"weight": update.Weight,
	}
	if update.MedicalHistory != nil {
		for i := range update.MedicalHistory {
			if update.MedicalHistory[i].ID == "" {
				update.MedicalHistory[i].ID = uuid.New().String()
			}
		}
		updateDoc["medicalHistory"] = update.MedicalHistory
	}
	if update.Allergies != nil {
		updateDoc["allergies"] = update.Allergies
	}
	if update.CurrentMedications != nil {
		updateDoc["currentMedications"] = update.CurrentMedications
	}

	if err := s.Repo.UpdateSetDocument(patientID, updateDoc); err != nil {
		return nil, utils.NotFoundError{Resource: "patient"}
	}
	return s.GetProfile(patientID)
}

func fileField(fileType string) (string, error) {
	switch fileType {
	case models.FileTypeHandwrittenNote, models.FileTypeReport:
		return fileType, nil
	default:
		return "", utils.ValidationError{Reason: "fileType must be handwrittenNotes or reports"}
	}
}

func (s *DefaultPatientService) GetFiles(patientID, fileType string) ([]models.FileRecord, error) {
	patient, err := s.GetProfile(patientID)
	if err != nil {
		return nil, err
	}

	switch fileType {
	case models.FileTypeHandwrittenNote:
		return patient.HandwrittenNotes, nil
	case models.FileTypeReport:
		return patient.Reports, nil
	default:
		// No type specified: both.
		return append(append([]models.FileRecord{}, patient.HandwrittenNotes...), patient.Reports...), nil
	}
}

func (s *DefaultPatientService) UploadFiles(patientID, fileType string, files []FileUpload) error {
	field, err := fileField(fileType)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return utils.ValidationError{Reason: "no files provided"}
	}
	if _, err := s.GetProfile(patientID); err != nil {
		return err
	}

	for _, f := range files {
		record := models.FileRecord{
			ID:        uuid.New().String(),
			URL:       f.URL,
			FileName:  f.FileName,
			CreatedAt: time.Now(),
		}
		if err := s.Repo.PushToArray(patientID, field, record); err != nil {
			return fmt.Errorf("failed to save file record: %w", err)
		}
	}
	return nil
}

func (s *DefaultPatientService) DeleteFile(patientID, fileType, fileID string) error {
	field, err := fileField(fileType)
	if err != nil {
		return err
	}
	patient, err := s.GetProfile(patientID)
	if err != nil {
		return err
	}

	records := patient.HandwrittenNotes
	if field == models.FileTypeReport {
		records = patient.Reports
	}
	found := false
	for _, r := range records {
		if r.ID == fileID {
			found = true
			break
		}
	}
	if !found {
		return utils.NotFoundError{Resource: "file"}
	}

	if err := s.Repo.PullFromArray(patientID, field, bson.M{"id": fileID}); err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}
	return nil
}

func (s *DefaultPatientService) GetAllDoctors(page, limit int) (*models.DoctorPage, error) {
	result, err := s.Doctors.GetPage(page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return result, nil
}

func (s *DefaultPatientService) GetDoctorDetails(doctorID string) (*models.DoctorPublic, error) {
	cacheKey := utils.DoctorCachePrefix + doctorID

	if s.Cache != nil {
		if cached, err := s.Cache.Get(context.Background(), cacheKey).Result(); err == nil {
			var doc models.DoctorPublic
			if err := json.Unmarshal([]byte(cached), &doc); err == nil {
				return &doc, nil
			}
		}
	}

	doctor, err := s.Doctors.GetByIDWithProjection(doctorID, bson.M{
		"id": 1, "username": 1, "email": 1, "specialization": 1,
		"yearsOfExperience": 1, "college": 1, "licenseNumber": 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if doctor == nil {
		return nil, utils.NotFoundError{Resource: "doctor"}
	}

	public := &models.DoctorPublic{
		ID:                doctor.ID,
		Username:          doctor.Username,
		Email:             doctor.Email,
		Specialization:    doctor.Specialization,
		YearsOfExperience: doctor.YearsOfExperience,
		College:           doctor.College,
		LicenseNumber:     doctor.LicenseNumber,
	}

	if s.Cache != nil {
		if data, err := json.Marshal(public); err == nil {
			if err := s.Cache.Set(context.Background(), cacheKey, data, utils.DoctorCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache doctor details",
					zap.String("doctorID", doctorID), zap.Error(err))
			}
		}
	}
	return public, nil
}

func (s *DefaultPatientService) GetDoctorSchedules(doctorID string, now time.Time) ([]models.Schedule, error) {
	schedules, err := s.Doctors.GetSchedules(doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}
	if schedules == nil {
		return nil, utils.NotFoundError{Resource: "doctor"}
	}
	return scheduling.ProjectSchedules(schedules, now), nil
}
