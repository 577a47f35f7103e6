package review

import (
	"context"
	"fmt"

	bookingRepo "kerjalink/database/repository/booking"
	reviewRepo "kerjalink/database/repository/review"
	"kerjalink/models"
	"kerjalink/services/tasks"
	"kerjalink/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ValidationError signals a review payload that violates the 1-5 rating
// contract or references the wrong booking state.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// SubmitInput is the payload for submitting a review. BookingID is optional:
// when present, the rating is also stamped onto the completed booking.
type SubmitInput struct {
	BookingID  string `json:"booking_id,omitempty"`
	WorkerID   string `json:"worker_id"`
	BusinessID string `json:"business_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
}

// Service accepts business reviews of workers.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Review, error)
	ListWorkerReviews(ctx context.Context, workerID string) ([]models.Review, error)
}

// DefaultReviewService implements Service.
type DefaultReviewService struct {
	ReviewRepo  reviewRepo.ReviewRepository
	BookingRepo bookingRepo.BookingRepository
	Tasks       tasks.Enqueuer
}

// Submit validates and stores a review, stamps the rating onto the booking
// when one is referenced, and enqueues a score recompute.
func (s *DefaultReviewService) Submit(ctx context.Context, input SubmitInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, &ValidationError{Reason: "rating must be between 1 and 5"}
	}

	rev := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  input.BookingID,
		WorkerID:   input.WorkerID,
		BusinessID: input.BusinessID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	if input.BookingID != "" {
		b, err := s.BookingRepo.GetByID(input.BookingID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch booking: %w", err)
		}
		if b == nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("booking %s not found", input.BookingID)}
		}
		if b.Status != models.BookingStatusCompleted {
			return nil, &ValidationError{Reason: "only completed bookings can be reviewed"}
		}
		if b.Rating != nil {
			return nil, &ValidationError{Reason: "booking already has a review"}
		}
		rev.WorkerID = b.WorkerID
		rev.BusinessID = b.BusinessID

		if err := s.BookingRepo.SetRating(input.BookingID, input.Rating); err != nil {
			return nil, fmt.Errorf("failed to stamp rating onto booking: %w", err)
		}
	}

	if err := s.ReviewRepo.Create(rev); err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}

	s.enqueueRecompute(rev.WorkerID)
	return rev, nil
}

// ListWorkerReviews retrieves all reviews for a worker.
func (s *DefaultReviewService) ListWorkerReviews(ctx context.Context, workerID string) ([]models.Review, error) {
	return s.ReviewRepo.ListByWorker(workerID)
}

func (s *DefaultReviewService) enqueueRecompute(workerID string) {
	if s.Tasks == nil {
		return
	}
	logger := utils.GetLogger()
	task, err := tasks.NewScoreRecomputeTask(models.ScoreRecomputePayload{WorkerID: workerID, Reason: "review_submitted"})
	if err != nil {
		logger.Warn("failed to build score recompute task", zap.Error(err))
		return
	}
	if _, err := s.Tasks.Enqueue(task); err != nil {
		logger.Warn("failed to enqueue score recompute task",
			zap.String("workerId", workerID), zap.Error(err))
	}
}
