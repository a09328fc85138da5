package prescription

import (
	"fmt"
	"strings"

	prescriptionRepo "carebridge/database/repository/prescription"
	"carebridge/models"
	"carebridge/utils"

	"github.com/google/uuid"
)

// CreateRequest is the payload for registering a scanned prescription.
type CreateRequest struct {
	FilePath    string `json:"filePath" binding:"required"`
	PatientName string `json:"patientName" binding:"required"`
	DoctorName  string `json:"doctorName" binding:"required"`
}

// PrescriptionService manages scanned prescription records.
type PrescriptionService interface {
	Create(req CreateRequest) (*models.Prescription, error)
	GetAll() ([]models.Prescription, error)
	GetByID(prescriptionID string) (*models.Prescription, error)
}

// DefaultPrescriptionService is the production PrescriptionService.
type DefaultPrescriptionService struct {
	Repo prescriptionRepo.PrescriptionRepository
}

func (s *DefaultPrescriptionService) Create(req CreateRequest) (*models.Prescription, error) {
	if strings.TrimSpace(req.FilePath) == "" {
		return nil, utils.ValidationError{Reason: "filePath is required"}
	}
	prescription := &models.Prescription{
		PrescriptionID: uuid.New().String(),
		FilePath:       req.FilePath,
		PatientName:    req.PatientName,
		DoctorName:     req.DoctorName,
	}
	if err := s.Repo.Create(prescription); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}
	return prescription, nil
}

func (s *DefaultPrescriptionService) GetAll() ([]models.Prescription, error) {
	prescriptions, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	if prescriptions == nil {
		prescriptions = []models.Prescription{}
	}
	return prescriptions, nil
}

func (s *DefaultPrescriptionService) GetByID(prescriptionID string) (*models.Prescription, error) {
	prescription, err := s.Repo.GetByPrescriptionID(prescriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prescription: %w", err)
	}
	if prescription == nil {
		return nil, utils.NotFoundError{Resource: "prescription"}
	}
	return prescription, nil
}
