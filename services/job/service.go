package job

import (
	"context"
	"fmt"
	"time"

	businessRepo "kerjalink/database/repository/business"
	jobRepo "kerjalink/database/repository/job"
	"kerjalink/models"

	"github.com/google/uuid"
)

// ValidationError signals an invalid job post payload.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// CreateInput is the payload for posting a job.
type CreateInput struct {
	BusinessID  string    `json:"business_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	PayAmount   float64   `json:"pay_amount"`
	ShiftStart  time.Time `json:"shift_start"`
	ShiftEnd    time.Time `json:"shift_end"`
	Slots       int       `json:"slots"`
}

// Service manages job posts.
type Service interface {
	CreateJob(ctx context.Context, input CreateInput) (*models.Job, error)
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	ListOpenJobs(ctx context.Context, city string) ([]models.Job, error)
	ListBusinessJobs(ctx context.Context, businessID string) ([]models.Job, error)
	CloseJob(ctx context.Context, jobID string) error
}

// DefaultJobService implements Service.
type DefaultJobService struct {
	JobRepo      jobRepo.JobRepository
	BusinessRepo businessRepo.BusinessRepository
}

// CreateJob validates and stores a new job post.
func (s *DefaultJobService) CreateJob(ctx context.Context, input CreateInput) (*models.Job, error) {
	if input.Title == "" {
		return nil, &ValidationError{Reason: "title is required"}
	}
	if input.Slots < 1 {
		return nil, &ValidationError{Reason: "slots must be at least 1"}
	}
	if !input.ShiftEnd.After(input.ShiftStart) {
		return nil, &ValidationError{Reason: "shift end must be after shift start"}
	}
	if input.PayAmount <= 0 {
		return nil, &ValidationError{Reason: "pay amount must be positive"}
	}

	business, err := s.BusinessRepo.GetByID(input.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch business: %w", err)
	}
	if business == nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("business %s not found", input.BusinessID)}
	}

	j := &models.Job{
		ID:          uuid.New().String(),
		BusinessID:  input.BusinessID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		PayAmount:   input.PayAmount,
		ShiftStart:  input.ShiftStart,
		ShiftEnd:    input.ShiftEnd,
		Slots:       input.Slots,
		Status:      models.JobStatusOpen,
	}
	if err := s.JobRepo.Create(j); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return j, nil
}

// GetJob retrieves a job post by ID.
func (s *DefaultJobService) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	j, err := s.JobRepo.GetByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}
	if j == nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("job %s not found", jobID)}
	}
	return j, nil
}

// ListOpenJobs retrieves open job posts, optionally filtered by city.
func (s *DefaultJobService) ListOpenJobs(ctx context.Context, city string) ([]models.Job, error) {
	return s.JobRepo.ListOpen(city)
}

// ListBusinessJobs retrieves a business's job posts.
func (s *DefaultJobService) ListBusinessJobs(ctx context.Context, businessID string) ([]models.Job, error) {
	return s.JobRepo.ListByBusiness(businessID)
}

// CloseJob marks a job post as closed.
func (s *DefaultJobService) CloseJob(ctx context.Context, jobID string) error {
	return s.JobRepo.Close(jobID)
}
