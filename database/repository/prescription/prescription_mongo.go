package prescriptionRepo

import (
	"context"
	"fmt"
	"time"

	"carebridge/database"
	"carebridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PrescriptionRepository defines persistence operations for prescription records.
type PrescriptionRepository interface {
	Create(prescription *models.Prescription) error
	GetAll() ([]models.Prescription, error)
	GetByPrescriptionID(prescriptionID string) (*models.Prescription, error)
}

// MongoPrescriptionRepo implements PrescriptionRepository using MongoDB.
type MongoPrescriptionRepo struct {
	coll *mongo.Collection
}

// NewMongoPrescriptionRepo creates a new instance of PrescriptionRepository using MongoDB.
func NewMongoPrescriptionRepo() PrescriptionRepository {
	coll := database.DB().Collection("prescriptions")
	repo := &MongoPrescriptionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPrescriptionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "prescriptionId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new prescription record.
func (r *MongoPrescriptionRepo) Create(prescription *models.Prescription) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, prescription)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

// GetAll returns every stored prescription record.
func (r *MongoPrescriptionRepo) GetAll() ([]models.Prescription, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var prescriptions []models.Prescription
	if err := cursor.All(ctx, &prescriptions); err != nil {
		return nil, fmt.Errorf("failed to decode prescriptions: %w", err)
	}
	return prescriptions, nil
}

// GetByPrescriptionID returns the record with the given external prescription ID.
func (r *MongoPrescriptionRepo) GetByPrescriptionID(prescriptionID string) (*models.Prescription, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var prescription models.Prescription
	err := r.coll.FindOne(ctx, bson.M{"prescriptionId": prescriptionID}).Decode(&prescription)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch prescription %s: %w", prescriptionID, err)
	}
	return &prescription, nil
}
