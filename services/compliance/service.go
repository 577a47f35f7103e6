package compliance

import (
	"context"
	"sort"
	"time"

	businessRepo "kerjalink/database/repository/business"
	complianceRepo "kerjalink/database/repository/compliance"
	workerRepo "kerjalink/database/repository/worker"
	"kerjalink/models"
)

// DayCounter is the slice of the booking repository used to derive
// daysWorked from raw bookings when no counter document exists yet.
type DayCounter interface {
	CountWorkedDays(workerID, businessID string, from, to time.Time) (int, error)
}

// DefaultComplianceService implements Service over the Mongo repositories.
type DefaultComplianceService struct {
	WorkerRepo     workerRepo.WorkerRepository
	BusinessRepo   businessRepo.BusinessRepository
	ComplianceRepo complianceRepo.ComplianceRepository
	BookingRepo    DayCounter
}

// GetStatus classifies a worker-business pair for the month containing t.
func (s *DefaultComplianceService) GetStatus(ctx context.Context, workerID, businessID string, t time.Time) (*models.ComplianceStatus, error) {
	worker, err := s.WorkerRepo.GetByID(workerID)
	if err != nil {
		return nil, &DataUnavailableError{Op: "fetch worker", Err: err}
	}
	if worker == nil {
		return nil, &NotFoundError{Resource: "worker", ID: workerID}
	}

	business, err := s.BusinessRepo.GetByID(businessID)
	if err != nil {
		return nil, &DataUnavailableError{Op: "fetch business", Err: err}
	}
	if business == nil {
		return nil, &NotFoundError{Resource: "business", ID: businessID}
	}

	month := MonthKey(t)
	days, err := s.daysWorked(workerID, businessID, month, t)
	if err != nil {
		return nil, err
	}

	status := BuildStatus(workerID, businessID, month, days)
	return &status, nil
}

// CheckAcceptance is the advisory gate; classification is identical to
// GetStatus.
func (s *DefaultComplianceService) CheckAcceptance(ctx context.Context, workerID, businessID string, t time.Time) (*models.ComplianceStatus, error) {
	return s.GetStatus(ctx, workerID, businessID, t)
}

// RankAlternativeWorkers enumerates candidates with remaining monthly
// capacity for a business, fewest days worked first. Blocked workers are
// excluded; ties keep source order.
func (s *DefaultComplianceService) RankAlternativeWorkers(ctx context.Context, businessID string, t time.Time) ([]models.AlternativeWorker, error) {
	business, err := s.BusinessRepo.GetByID(businessID)
	if err != nil {
		return nil, &DataUnavailableError{Op: "fetch business", Err: err}
	}
	if business == nil {
		return nil, &NotFoundError{Resource: "business", ID: businessID}
	}

	workers, err := s.WorkerRepo.GetAllWithProjection(nil)
	if err != nil {
		return nil, &DataUnavailableError{Op: "fetch workers", Err: err}
	}

	month := MonthKey(t)
	records, err := s.ComplianceRepo.ListByBusinessMonth(businessID, month)
	if err != nil {
		return nil, &DataUnavailableError{Op: "fetch compliance records", Err: err}
	}

	daysByWorker := make(map[string]int, len(records))
	for _, rec := range records {
		daysByWorker[rec.WorkerID] = rec.DaysWorked
	}

	candidates := make([]models.AlternativeWorker, 0, len(workers))
	for _, w := range workers {
		days := daysByWorker[w.ID]
		status, _ := Classify(days)
		if status == models.ComplianceStatusBlocked {
			continue
		}
		candidates = append(candidates, models.AlternativeWorker{
			WorkerID:         w.ID,
			Name:             w.Name,
			DaysWorked:       days,
			DaysRemaining:    MonthlyDayLimit - days,
			ReliabilityScore: w.ReliabilityScore,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DaysWorked < candidates[j].DaysWorked
	})
	return candidates, nil
}

// daysWorked reads the counter document, falling back to counting raw
// bookings for pairs whose history predates the counter.
func (s *DefaultComplianceService) daysWorked(workerID, businessID, month string, t time.Time) (int, error) {
	record, err := s.ComplianceRepo.Get(workerID, businessID, month)
	if err != nil {
		return 0, &DataUnavailableError{Op: "fetch compliance record", Err: err}
	}
	if record != nil {
		return record.DaysWorked, nil
	}

	if s.BookingRepo == nil {
		return 0, nil
	}
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	to := from.AddDate(0, 1, 0)
	days, err := s.BookingRepo.CountWorkedDays(workerID, businessID, from, to)
	if err != nil {
		return 0, &DataUnavailableError{Op: "count worked days", Err: err}
	}
	return days, nil
}
