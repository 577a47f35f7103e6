package booking

import (
	"context"

	"kerjalink/models"
)

// Service drives the booking lifecycle:
// pending -> accepted/rejected -> in_progress -> completed, or cancelled.
type Service interface {
	// ApplyToJob creates a pending booking for a worker on an open job.
	ApplyToJob(ctx context.Context, jobID, workerID string) (*models.Booking, error)

	// Accept moves a pending booking to accepted under the monthly day
	// limit and returns the one-time attendance code for check-in.
	Accept(ctx context.Context, bookingID string) (*models.Booking, string, error)

	// Reject declines a pending booking.
	Reject(ctx context.Context, bookingID, reason string) error

	// Cancel aborts a pending or accepted booking.
	Cancel(ctx context.Context, bookingID, reason string) error

	// CheckIn verifies the attendance code, stamps the actual start time,
	// and moves the booking to in_progress.
	CheckIn(ctx context.Context, bookingID, code string) (*models.Booking, error)

	// CheckOut stamps the actual end time, completes the booking, credits
	// the worker's wallet, and enqueues a score recompute.
	CheckOut(ctx context.Context, bookingID string) (*models.Booking, error)

	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListWorkerBookings(ctx context.Context, workerID string) ([]models.Booking, error)
	ListBusinessBookings(ctx context.Context, businessID, status string) ([]models.Booking, error)
}
