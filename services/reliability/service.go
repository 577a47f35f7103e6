package reliability

import (
	"context"
	"encoding/json"
	"time"

	historyRepo "kerjalink/database/repository/history"
	reviewRepo "kerjalink/database/repository/review"
	workerRepo "kerjalink/database/repository/worker"
	"kerjalink/models"
	"kerjalink/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingFetcher is the slice of the booking repository the scorer needs.
type BookingFetcher interface {
	ListByWorker(workerID string) ([]models.Booking, error)
}

// DefaultReliabilityService implements Service over the Mongo repositories
// with a Redis score cache.
type DefaultReliabilityService struct {
	WorkerRepo  workerRepo.WorkerRepository
	BookingRepo BookingFetcher
	ReviewRepo  reviewRepo.ReviewRepository
	HistoryRepo historyRepo.ScoreHistoryRepository
	Cache       *redis.Client
}

// GetScore serves the cached score when present, recomputing on a miss.
func (s *DefaultReliabilityService) GetScore(ctx context.Context, workerID string) (*models.ReliabilityScore, error) {
	if s.Cache != nil {
		data, err := s.Cache.Get(ctx, utils.ScoreCachePrefix+workerID).Result()
		if err == nil {
			var score models.ReliabilityScore
			if jsonErr := json.Unmarshal([]byte(data), &score); jsonErr == nil {
				return &score, nil
			}
		}
	}
	return s.RecomputeScore(ctx, workerID)
}

// RecomputeScore computes a fresh score and persists it best-effort.
func (s *DefaultReliabilityService) RecomputeScore(ctx context.Context, workerID string) (*models.ReliabilityScore, error) {
	logger := utils.GetLogger()

	worker, err := s.WorkerRepo.GetByID(workerID)
	if err != nil {
		return nil, &DataUnavailableError{Op: "fetch worker", Err: err}
	}
	if worker == nil {
		return nil, &NotFoundError{WorkerID: workerID}
	}

	bookings, err := s.BookingRepo.ListByWorker(workerID)
	if err != nil {
		return nil, &DataUnavailableError{Op: "fetch bookings", Err: err}
	}

	// Booking-tied ratings already live on the booking documents; only
	// standalone reviews are added so no rating is counted twice.
	reviews, err := s.ReviewRepo.ListStandaloneByWorker(workerID)
	if err != nil {
		return nil, &DataUnavailableError{Op: "fetch reviews", Err: err}
	}

	score := Compute(workerID, bookings, reviews)
	now := time.Now()

	// Everything below is fire-and-forget: a cache or history failure must
	// not fail the scoring call.
	if s.Cache != nil {
		if data, jsonErr := json.Marshal(score); jsonErr == nil {
			if err := s.Cache.Set(ctx, utils.ScoreCachePrefix+workerID, data, utils.ScoreCacheTTL).Err(); err != nil {
				logger.Warn("failed to cache reliability score",
					zap.String("workerId", workerID), zap.Error(err))
			}
		}
	}

	if err := s.WorkerRepo.UpdateScore(workerID, score, now); err != nil {
		logger.Warn("failed to update cached score on worker record",
			zap.String("workerId", workerID), zap.Error(err))
	}

	if s.HistoryRepo != nil {
		entry := &models.ScoreHistoryEntry{
			ID:        uuid.New().String(),
			WorkerID:  workerID,
			Score:     score.Score,
			Breakdown: score.Breakdown,
		}
		if err := s.HistoryRepo.Append(entry); err != nil {
			logger.Warn("failed to append score history entry",
				zap.String("workerId", workerID), zap.Error(err))
		}
	}

	return &score, nil
}

// GetScoreHistory returns the most recent history entries for a worker.
func (s *DefaultReliabilityService) GetScoreHistory(ctx context.Context, workerID string, limit int64) ([]models.ScoreHistoryEntry, error) {
	worker, err := s.WorkerRepo.GetByID(workerID)
	if err != nil {
		return nil, &DataUnavailableError{Op: "fetch worker", Err: err}
	}
	if worker == nil {
		return nil, &NotFoundError{WorkerID: workerID}
	}

	entries, err := s.HistoryRepo.ListByWorker(workerID, limit)
	if err != nil {
		return nil, &DataUnavailableError{Op: "fetch score history", Err: err}
	}
	return entries, nil
}
