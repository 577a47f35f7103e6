package workerRepo

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

// MongoWorkerRepo implements WorkerRepository using MongoDB.
type MongoWorkerRepo struct {
	coll *mongo.Collection
}

// NewMongoWorkerRepo creates a new instance of WorkerRepository using MongoDB.
func NewMongoWorkerRepo() WorkerRepository {
	coll := database.DB().Collection("workers")
	repo := &MongoWorkerRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoWorkerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "city", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new worker document.
func (r *MongoWorkerRepo) Create(worker *models.Worker) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	worker.CreatedAt = now
	worker.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, worker)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}
	return nil
}

// GetByID retrieves a worker by its unique ID. Returns (nil, nil) when the
// worker does not exist.
func (r *MongoWorkerRepo) GetByID(id string) (*models.Worker, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var worker models.Worker
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&worker); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch worker with id %s: %w", id, err)
	}
	return &worker, nil
}

// GetAllWithProjection retrieves all workers with an optional projection.
func (r *MongoWorkerRepo) GetAllWithProjection(projection bson.M) ([]models.Worker, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find()
	if projection != nil {
		opts.SetProjection(projection)
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve workers: %w", err)
	}
	defer cursor.Close(ctx)

	var workers []models.Worker
	for cursor.Next(ctx) {
		var w models.Worker
		if err := cursor.Decode(&w); err != nil {
			return nil, fmt.Errorf("failed to decode worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error while retrieving workers: %w", err)
	}
	return workers, nil
}

// Update modifies an existing worker document.
func (r *MongoWorkerRepo) Update(worker *models.Worker) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	worker.UpdatedAt = time.Now()
	filter := bson.M{"id": worker.ID}
	update := bson.M{"$set": worker}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update worker with id %s: %w", worker.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("worker with id %s not found", worker.ID)
	}
	return nil
}

// Delete removes a worker document by its ID.
func (r *MongoWorkerRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete worker with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("worker with id %s not found", id)
	}
	return nil
}

// UpdateScore refreshes the denormalized reliability score on the worker
// document. Last write wins.
func (r *MongoWorkerRepo) UpdateScore(id string, score models.ReliabilityScore, computedAt time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"reliability_score": score.Score,
		"score_breakdown":   score.Breakdown,
		"score_computed_at": computedAt,
		"updated_at":        time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update score for worker %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("worker with id %s not found", id)
	}
	return nil
}
