package reliability

import (
	"context"

	"kerjalink/models"
)

// Service computes, caches, and records worker reliability scores.
type Service interface {
	// GetScore returns the worker's current reliability score, serving
	// from the Redis cache when fresh and recomputing otherwise.
	GetScore(ctx context.Context, workerID string) (*models.ReliabilityScore, error)

	// RecomputeScore recomputes the score from bookings and reviews, then
	// refreshes the cache, the worker record, and the score history log.
	// The persistence writes are best-effort: their failure never fails
	// the scoring call.
	RecomputeScore(ctx context.Context, workerID string) (*models.ReliabilityScore, error)

	// GetScoreHistory returns the most recent score history entries.
	GetScoreHistory(ctx context.Context, workerID string, limit int64) ([]models.ScoreHistoryEntry, error)
}
