package complianceRepo

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

// ComplianceRepository defines data access methods for the per
// worker x business x month day counters.
type ComplianceRepository interface {
	Get(workerID, businessID, month string) (*models.ComplianceRecord, error)
	ListByBusinessMonth(businessID, month string) ([]models.ComplianceRecord, error)
}

// MongoComplianceRepo implements ComplianceRepository using MongoDB. Writes
// to the counters happen inside the booking accept transaction; this repo
// only reads them.
type MongoComplianceRepo struct {
	coll *mongo.Collection
}

// NewMongoComplianceRepo creates a new instance of ComplianceRepository using MongoDB.
func NewMongoComplianceRepo() ComplianceRepository {
	coll := database.DB().Collection("compliance_records")
	repo := &MongoComplianceRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the unique compound index the atomic
// increment-and-check in the accept transaction relies on.
func (r *MongoComplianceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "worker_id", Value: 1},
				{Key: "business_id", Value: 1},
				{Key: "month", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "business_id", Value: 1}, {Key: "month", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Get retrieves the counter for a worker-business pair and month. Returns
// (nil, nil) when no counter exists yet — zero history is not an error.
func (r *MongoComplianceRepo) Get(workerID, businessID, month string) (*models.ComplianceRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"worker_id": workerID, "business_id": businessID, "month": month}
	var record models.ComplianceRecord
	if err := r.coll.FindOne(ctx, filter).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch compliance record: %w", err)
	}
	return &record, nil
}

// ListByBusinessMonth retrieves all counters for a business in a month.
func (r *MongoComplianceRepo) ListByBusinessMonth(businessID, month string) ([]models.ComplianceRecord, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"business_id": businessID, "month": month})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve compliance records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.ComplianceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode compliance records: %w", err)
	}
	return records, nil
}
