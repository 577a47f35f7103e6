package jobRepo

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

// JobRepository defines data access methods for job posts.
type JobRepository interface {
	Create(job *models.Job) error
	GetByID(id string) (*models.Job, error)
	ListOpen(city string) ([]models.Job, error)
	ListByBusiness(businessID string) ([]models.Job, error)
	Close(id string) error

	// IncrementFilled bumps the filled count by one, but only while
	// filled < slots. Returns an error when the job is already full or
	// not open. Accepts a caller context so it can run inside a session.
	IncrementFilled(ctx context.Context, id string) error
}

// MongoJobRepo implements JobRepository using MongoDB.
type MongoJobRepo struct {
	coll *mongo.Collection
}

// NewMongoJobRepo creates a new instance of JobRepository using MongoDB.
func NewMongoJobRepo() JobRepository {
	coll := database.DB().Collection("jobs")
	repo := &MongoJobRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoJobRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "business_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "city", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new job document.
func (r *MongoJobRepo) Create(job *models.Job) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, job)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetByID retrieves a job by its unique ID. Returns (nil, nil) when the job
// does not exist.
func (r *MongoJobRepo) GetByID(id string) (*models.Job, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var job models.Job
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch job with id %s: %w", id, err)
	}
	return &job, nil
}

// ListOpen retrieves open job posts, optionally filtered by city.
func (r *MongoJobRepo) ListOpen(city string) ([]models.Job, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"status": models.JobStatusOpen}
	if city != "" {
		filter["location"] = city
	}

	opts := options.Find().SetSort(bson.D{{Key: "shift_start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve open jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return jobs, nil
}

// ListByBusiness retrieves all job posts for a business.
func (r *MongoJobRepo) ListByBusiness(businessID string) ([]models.Job, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"business_id": businessID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve jobs for business %s: %w", businessID, err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return jobs, nil
}

// Close marks a job post as closed.
func (r *MongoJobRepo) Close(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": models.JobStatusClosed, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to close job with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("job with id %s not found", id)
	}
	return nil
}

// IncrementFilled bumps the filled count while capacity remains. The filter
// makes the check-and-increment a single atomic operation.
func (r *MongoJobRepo) IncrementFilled(ctx context.Context, id string) error {
	filter := bson.M{
		"id":     id,
		"status": models.JobStatusOpen,
		"$expr":  bson.M{"$lt": bson.A{"$filled", "$slots"}},
	}
	update := bson.M{
		"$inc": bson.M{"filled": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to increment filled for job %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("job %s is full or no longer open", id)
	}
	return nil
}
