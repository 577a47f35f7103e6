package compliance

import (
	"context"
	"time"

	"kerjalink/models"
)

// Service tracks the PP 35/2021 monthly day limit per worker-business pair.
type Service interface {
	// GetStatus classifies a worker-business pair for the month containing t.
	GetStatus(ctx context.Context, workerID, businessID string, t time.Time) (*models.ComplianceStatus, error)

	// CheckAcceptance is the advisory pre-accept gate: same classification
	// as GetStatus, called by the UI before attempting an accept. The
	// authoritative check is the atomic counter increment inside the
	// booking accept transaction.
	CheckAcceptance(ctx context.Context, workerID, businessID string, t time.Time) (*models.ComplianceStatus, error)

	// RankAlternativeWorkers lists non-blocked candidate workers for a
	// business in the month containing t, sorted by remaining capacity
	// (fewest days worked first).
	RankAlternativeWorkers(ctx context.Context, businessID string, t time.Time) ([]models.AlternativeWorker, error)
}
