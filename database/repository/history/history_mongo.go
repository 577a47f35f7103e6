package historyRepo

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

// ScoreHistoryRepository defines access to the append-only reliability
// score log used for trend charts.
type ScoreHistoryRepository interface {
	Append(entry *models.ScoreHistoryEntry) error
	ListByWorker(workerID string, limit int64) ([]models.ScoreHistoryEntry, error)
}

// MongoScoreHistoryRepo implements ScoreHistoryRepository using MongoDB.
type MongoScoreHistoryRepo struct {
	coll *mongo.Collection
}

// NewMongoScoreHistoryRepo creates a new instance of ScoreHistoryRepository using MongoDB.
func NewMongoScoreHistoryRepo() ScoreHistoryRepository {
	coll := database.DB().Collection("score_history")
	repo := &MongoScoreHistoryRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoScoreHistoryRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "worker_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Append inserts a new history entry. The log is append-only.
func (r *MongoScoreHistoryRepo) Append(entry *models.ScoreHistoryEntry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	entry.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append score history entry: %w", err)
	}
	return nil
}

// ListByWorker retrieves the most recent history entries for a worker.
func (r *MongoScoreHistoryRepo) ListByWorker(workerID string, limit int64) ([]models.ScoreHistoryEntry, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, bson.M{"worker_id": workerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve score history: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.ScoreHistoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode score history: %w", err)
	}
	return entries, nil
}
