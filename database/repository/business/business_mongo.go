package businessRepo

import (
	"context"
	"fmt"
	"time"

	"kerjalink/database"
	"kerjalink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BusinessRepository defines data access methods for business accounts.
type BusinessRepository interface {
	Create(business *models.Business) error
	GetByID(id string) (*models.Business, error)
	Update(business *models.Business) error
	Delete(id string) error
}

// MongoBusinessRepo implements BusinessRepository using MongoDB.
type MongoBusinessRepo struct {
	coll *mongo.Collection
}

// NewMongoBusinessRepo creates a new instance of BusinessRepository using MongoDB.
func NewMongoBusinessRepo() BusinessRepository {
	coll := database.DB().Collection("businesses")
	repo := &MongoBusinessRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBusinessRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new business document.
func (r *MongoBusinessRepo) Create(business *models.Business) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	business.CreatedAt = now
	business.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, business)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

// GetByID retrieves a business by its unique ID. Returns (nil, nil) when the
// business does not exist.
func (r *MongoBusinessRepo) GetByID(id string) (*models.Business, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var business models.Business
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&business); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch business with id %s: %w", id, err)
	}
	return &business, nil
}

// Update modifies an existing business document.
func (r *MongoBusinessRepo) Update(business *models.Business) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	business.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": business.ID}, bson.M{"$set": business})
	if err != nil {
		return fmt.Errorf("failed to update business with id %s: %w", business.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("business with id %s not found", business.ID)
	}
	return nil
}

// Delete removes a business document by its ID.
func (r *MongoBusinessRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete business with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("business with id %s not found", id)
	}
	return nil
}
