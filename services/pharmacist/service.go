package pharmacist

import (
	"fmt"

	pharmacistRepo "carebridge/database/repository/pharmacist"
	"carebridge/models"
	"carebridge/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// ProfileUpdate carries the pharmacist-editable profile fields.
type ProfileUpdate struct {
	YearsOfExperience int    `json:"yearsOfExperience"`
	Pharmacy          string `json:"pharmacy"`
}

// PharmacistService covers the pharmacist portal profile operations.
type PharmacistService interface {
	GetProfile(pharmacistID string) (*models.Pharmacist, error)
	UpdateProfile(pharmacistID string, update ProfileUpdate) (*models.Pharmacist, error)
}

// DefaultPharmacistService is the production PharmacistService.
type DefaultPharmacistService struct {
	Repo pharmacistRepo.PharmacistRepository
}

func (s *DefaultPharmacistService) GetProfile(pharmacistID string) (*models.Pharmacist, error) {
	pharmacist, err := s.Repo.GetByIDWithProjection(pharmacistID, bson.M{"passwordHash": 0})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pharmacist profile: %w", err)
	}
	if pharmacist == nil {
		return nil, utils.NotFoundError{Resource: "pharmacist"}
	}
	return pharmacist, nil
}

func (s *DefaultPharmacistService) UpdateProfile(pharmacistID string, update ProfileUpdate) (*models.Pharmacist, error) {
	updateDoc := bson.M{}
	if update.YearsOfExperience != 0 {
		updateDoc["yearsOfExperience"] = update.YearsOfExperience
	}
	if update.Pharmacy != "" {
		updateDoc["pharmacy"] = update.Pharmacy
	}
	if len(updateDoc) == 0 {
		return nil, utils.ValidationError{Reason: "no updatable fields provided"}
	}

	if err := s.Repo.UpdateSetDocument(pharmacistID, updateDoc); err != nil {
		return nil, utils.NotFoundError{Resource: "pharmacist"}
	}
	return s.GetProfile(pharmacistID)
}
