package bookingRepo

import (
	"context"
	"time"

	"kerjalink/models"
)

// BookingRepository defines data access methods for bookings.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	ListByWorker(workerID string) ([]models.Booking, error)
	ListByJob(jobID string) ([]models.Booking, error)
	ListByBusiness(businessID, status string) ([]models.Booking, error)

	// UpdateStatus moves a booking from one status to another. The current
	// status is part of the filter, so a stale transition does not match.
	UpdateStatus(id, from, to, reason string) error

	// SetCheckIn stamps the actual start time and moves the booking to
	// in_progress. SetCheckOut stamps the actual end time and completes it.
	SetCheckIn(id string, at time.Time) error
	SetCheckOut(id string, at time.Time) error

	// SetRating stamps a 1-5 review rating onto a completed booking.
	SetRating(id string, rating int) error

	// CountWorkedDays counts accepted/completed bookings for a
	// worker-business pair whose scheduled start falls inside [from, to).
	// Used to derive daysWorked when no compliance counter exists yet.
	CountWorkedDays(workerID, businessID string, from, to time.Time) (int, error)

	// AcceptWithinDayLimit atomically accepts a pending booking: it
	// increments the (worker, business, month) compliance counter while it
	// is still under limit, flips the booking to accepted with the given
	// attendance code hash, and bumps the job's filled count — all inside
	// one transaction. Returns ErrDayLimitReached when the counter is at
	// the limit and ErrNotPending when the booking already moved on.
	AcceptWithinDayLimit(ctx context.Context, booking *models.Booking, codeHash, month string, limit int) error
}
