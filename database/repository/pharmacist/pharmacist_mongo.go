package pharmacistRepo

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

// PharmacistRepository defines persistence operations for pharmacist accounts.
type PharmacistRepository interface {
	Create(pharmacist *models.Pharmacist) error
	GetByIDWithProjection(id string, projection bson.M) (*models.Pharmacist, error)
	GetByEmailWithProjection(email string, projection bson.M) (*models.Pharmacist, error)
	UpdateSetDocument(id string, updateDoc bson.M) error
}

// MongoPharmacistRepo implements PharmacistRepository using MongoDB.
type MongoPharmacistRepo struct {
	coll *mongo.Collection
}

// NewMongoPharmacistRepo creates a new instance of PharmacistRepository using MongoDB.
func NewMongoPharmacistRepo() PharmacistRepository {
	coll := database.DB().Collection("pharmacists")
	repo := &MongoPharmacistRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPharmacistRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "licenseNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new pharmacist document.
func (r *MongoPharmacistRepo) Create(pharmacist *models.Pharmacist) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	pharmacist.CreatedAt = now
	pharmacist.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, pharmacist)
	if err != nil {
		return fmt.Errorf("failed to create pharmacist: %w", err)
	}
	return nil
}

// GetByIDWithProjection retrieves a pharmacist by its unique ID using a projection.
func (r *MongoPharmacistRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Pharmacist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var pharmacist models.Pharmacist
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&pharmacist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pharmacist with id %s: %w", id, err)
	}
	return &pharmacist, nil
}

// GetByEmailWithProjection retrieves a pharmacist by its email using a projection.
func (r *MongoPharmacistRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.Pharmacist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var pharmacist models.Pharmacist
	if err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&pharmacist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pharmacist with email %s: %w", email, err)
	}
	return &pharmacist, nil
}

// UpdateSetDocument applies a partial $set update to a pharmacist document.
func (r *MongoPharmacistRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update pharmacist with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("pharmacist with id %s not found", id)
	}
	return nil
}
