package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "kerjalink/database/repository/booking"
	jobRepo "kerjalink/database/repository/job"
	walletRepo "kerjalink/database/repository/wallet"
	workerRepo "kerjalink/database/repository/worker"
	"kerjalink/models"
	"kerjalink/services/compliance"
	"kerjalink/services/tasks"
	"kerjalink/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBookingService implements Service.
type DefaultBookingService struct {
	BookingRepo bookingRepo.BookingRepository
	JobRepo     jobRepo.JobRepository
	WorkerRepo  workerRepo.WorkerRepository
	WalletRepo  walletRepo.WalletRepository
	Compliance  compliance.Service
	Tasks       tasks.Enqueuer
}

// ApplyToJob creates a pending booking for a worker on an open job.
func (s *DefaultBookingService) ApplyToJob(ctx context.Context, jobID, workerID string) (*models.Booking, error) {
	job, err := s.JobRepo.GetByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}
	if job == nil {
		return nil, &NotFoundError{Resource: "job", ID: jobID}
	}
	if job.Status != models.JobStatusOpen || job.Filled >= job.Slots {
		return nil, &JobFullError{JobID: jobID}
	}

	worker, err := s.WorkerRepo.GetByID(workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worker: %w", err)
	}
	if worker == nil {
		return nil, &NotFoundError{Resource: "worker", ID: workerID}
	}

	existing, err := s.BookingRepo.ListByJob(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job bookings: %w", err)
	}
	for _, b := range existing {
		if b.WorkerID == workerID && !b.IsTerminal() {
			return nil, fmt.Errorf("worker %s already has an active application for job %s", workerID, jobID)
		}
	}

	booking := &models.Booking{
		ID:             uuid.New().String(),
		JobID:          job.ID,
		WorkerID:       workerID,
		BusinessID:     job.BusinessID,
		Status:         models.BookingStatusPending,
		ScheduledStart: job.ShiftStart,
		ScheduledEnd:   job.ShiftEnd,
		PayAmount:      job.PayAmount,
	}
	if err := s.BookingRepo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

// Accept moves a pending booking to accepted. The compliance gate runs
// twice: once here as an advisory classification with a full message, and
// once authoritatively inside the accept transaction, where the counter
// increment is guarded against concurrent accepts at the limit.
func (s *DefaultBookingService) Accept(ctx context.Context, bookingID string) (*models.Booking, string, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, "", &NotFoundError{Resource: "booking", ID: bookingID}
	}
	if b.Status != models.BookingStatusPending {
		return nil, "", &InvalidTransitionError{BookingID: bookingID, Status: b.Status, Action: "accept"}
	}

	status, err := s.Compliance.CheckAcceptance(ctx, b.WorkerID, b.BusinessID, b.ScheduledStart)
	if err != nil {
		return nil, "", err
	}
	if !status.CanAccept {
		return nil, "", &DayLimitError{Status: *status}
	}

	code := newAttendanceCode()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash attendance code: %w", err)
	}

	err = s.BookingRepo.AcceptWithinDayLimit(ctx, b, string(hash), status.Month, compliance.MonthlyDayLimit)
	switch {
	case errors.Is(err, bookingRepo.ErrDayLimitReached):
		blocked := compliance.BuildStatus(b.WorkerID, b.BusinessID, status.Month, compliance.MonthlyDayLimit)
		return nil, "", &DayLimitError{Status: blocked}
	case errors.Is(err, bookingRepo.ErrNotPending):
		return nil, "", &InvalidTransitionError{BookingID: bookingID, Status: models.BookingStatusAccepted, Action: "accept"}
	case errors.Is(err, bookingRepo.ErrJobFull):
		return nil, "", &JobFullError{JobID: b.JobID}
	case err != nil:
		return nil, "", err
	}

	b.Status = models.BookingStatusAccepted
	b.AttendanceCodeHash = string(hash)
	return b, code, nil
}

// Reject declines a pending booking.
func (s *DefaultBookingService) Reject(ctx context.Context, bookingID, reason string) error {
	return s.transition(bookingID, models.BookingStatusPending, models.BookingStatusRejected, reason, "reject")
}

// Cancel aborts a pending or accepted booking. An accepted booking's
// compliance counter is not decremented: days committed to a worker stay
// counted toward the statutory limit.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID, reason string) error {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return &NotFoundError{Resource: "booking", ID: bookingID}
	}
	if b.Status != models.BookingStatusPending && b.Status != models.BookingStatusAccepted {
		return &InvalidTransitionError{BookingID: bookingID, Status: b.Status, Action: "cancel"}
	}
	return s.transition(bookingID, b.Status, models.BookingStatusCancelled, reason, "cancel")
}

// CheckIn verifies the attendance code and stamps the actual start time.
func (s *DefaultBookingService) CheckIn(ctx context.Context, bookingID, code string) (*models.Booking, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, &NotFoundError{Resource: "booking", ID: bookingID}
	}
	if b.Status != models.BookingStatusAccepted {
		return nil, &InvalidTransitionError{BookingID: bookingID, Status: b.Status, Action: "check in"}
	}

	if bcrypt.CompareHashAndPassword([]byte(b.AttendanceCodeHash), []byte(code)) != nil {
		return nil, &AttendanceCodeError{BookingID: bookingID}
	}

	now := time.Now()
	if err := s.BookingRepo.SetCheckIn(bookingID, now); err != nil {
		return nil, err
	}
	b.Status = models.BookingStatusInProgress
	b.ActualStart = &now
	return b, nil
}

// CheckOut completes the booking, credits the worker's wallet with the
// shift pay, and enqueues a reliability score recompute.
func (s *DefaultBookingService) CheckOut(ctx context.Context, bookingID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, &NotFoundError{Resource: "booking", ID: bookingID}
	}
	if b.Status != models.BookingStatusInProgress {
		return nil, &InvalidTransitionError{BookingID: bookingID, Status: b.Status, Action: "check out"}
	}

	now := time.Now()
	if err := s.BookingRepo.SetCheckOut(bookingID, now); err != nil {
		return nil, err
	}
	b.Status = models.BookingStatusCompleted
	b.ActualEnd = &now

	txn := &models.WalletTransaction{
		ID:        uuid.New().String(),
		WorkerID:  b.WorkerID,
		BookingID: b.ID,
		Type:      models.WalletTxnCredit,
		Amount:    b.PayAmount,
		Reference: "shift pay",
	}
	if err := s.WalletRepo.Credit(txn); err != nil {
		// The booking is already completed; a failed credit is logged for
		// manual ledger reconciliation rather than rolling back the shift.
		logger.Error("failed to credit wallet after check-out",
			zap.String("bookingId", b.ID), zap.String("workerId", b.WorkerID), zap.Error(err))
	}

	s.enqueueRecompute(b.WorkerID, "booking_completed")
	return b, nil
}

// GetBooking retrieves a booking by ID.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, &NotFoundError{Resource: "booking", ID: bookingID}
	}
	return b, nil
}

// ListWorkerBookings retrieves a worker's bookings.
func (s *DefaultBookingService) ListWorkerBookings(ctx context.Context, workerID string) ([]models.Booking, error) {
	return s.BookingRepo.ListByWorker(workerID)
}

// ListBusinessBookings retrieves a business's bookings, optionally by status.
func (s *DefaultBookingService) ListBusinessBookings(ctx context.Context, businessID, status string) ([]models.Booking, error) {
	return s.BookingRepo.ListByBusiness(businessID, status)
}

func (s *DefaultBookingService) transition(bookingID, from, to, reason, action string) error {
	if err := s.BookingRepo.UpdateStatus(bookingID, from, to, reason); err != nil {
		return &InvalidTransitionError{BookingID: bookingID, Status: from, Action: action}
	}
	return nil
}

func (s *DefaultBookingService) enqueueRecompute(workerID, reason string) {
	if s.Tasks == nil {
		return
	}
	logger := utils.GetLogger()
	task, err := tasks.NewScoreRecomputeTask(models.ScoreRecomputePayload{WorkerID: workerID, Reason: reason})
	if err != nil {
		logger.Warn("failed to build score recompute task", zap.Error(err))
		return
	}
	if _, err := s.Tasks.Enqueue(task); err != nil {
		logger.Warn("failed to enqueue score recompute task",
			zap.String("workerId", workerID), zap.Error(err))
	}
}

// newAttendanceCode generates a short one-time code shared with the worker
// at acceptance and presented at check-in.
func newAttendanceCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
}
