package patientRepo

import (
	"carebridge/models"

	"go.mongodb.org/mongo-driver/bson"
)

// PatientRepository defines persistence operations for patient accounts.
type PatientRepository interface {
	Create(patient *models.Patient) error
	Update(patient *models.Patient) error
	Delete(id string) error
	GetByIDWithProjection(id string, projection bson.M) (*models.Patient, error)
	GetByEmailWithProjection(email string, projection bson.M) (*models.Patient, error)
	GetManyByIDs(ids []string, projection bson.M) ([]models.Patient, error)
	UpdateSetDocument(id string, updateDoc bson.M) error

	// Record editing.
	PushToArray(id, field string, value interface{}) error
	PullFromArray(id, field string, value interface{}) error
}
