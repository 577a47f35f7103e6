package compliance

import (
	"context"
	"errors"
	"testing"
	"time"

	"kerjalink/models"

	"go.mongodb.org/mongo-driver/bson"
)

// --- in-memory fakes ---

type fakeWorkerRepo struct {
	workers []models.Worker
}

func (f *fakeWorkerRepo) Create(*models.Worker) error { return nil }
func (f *fakeWorkerRepo) GetByID(id string) (*models.Worker, error) {
	for i := range f.workers {
		if f.workers[i].ID == id {
			return &f.workers[i], nil
		}
	}
	return nil, nil
}
func (f *fakeWorkerRepo) GetAllWithProjection(bson.M) ([]models.Worker, error) {
	return f.workers, nil
}
func (f *fakeWorkerRepo) Update(*models.Worker) error { return nil }
func (f *fakeWorkerRepo) Delete(string) error         { return nil }
func (f *fakeWorkerRepo) UpdateScore(string, models.ReliabilityScore, time.Time) error {
	return nil
}

type fakeBusinessRepo struct {
	businesses map[string]*models.Business
}

func (f *fakeBusinessRepo) Create(*models.Business) error { return nil }
func (f *fakeBusinessRepo) GetByID(id string) (*models.Business, error) {
	return f.businesses[id], nil
}
func (f *fakeBusinessRepo) Update(*models.Business) error { return nil }
func (f *fakeBusinessRepo) Delete(string) error           { return nil }

type fakeComplianceRepo struct {
	records []models.ComplianceRecord
	err     error
}

func (f *fakeComplianceRepo) Get(workerID, businessID, month string) (*models.ComplianceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.records {
		r := f.records[i]
		if r.WorkerID == workerID && r.BusinessID == businessID && r.Month == month {
			return &f.records[i], nil
		}
	}
	return nil, nil
}
func (f *fakeComplianceRepo) ListByBusinessMonth(businessID, month string) ([]models.ComplianceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.ComplianceRecord
	for _, r := range f.records {
		if r.BusinessID == businessID && r.Month == month {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeDayCounter struct {
	days int
}

func (f *fakeDayCounter) CountWorkedDays(workerID, businessID string, from, to time.Time) (int, error) {
	return f.days, nil
}

func newTestService(workers []models.Worker, records []models.ComplianceRecord) *DefaultComplianceService {
	return &DefaultComplianceService{
		WorkerRepo: &fakeWorkerRepo{workers: workers},
		BusinessRepo: &fakeBusinessRepo{businesses: map[string]*models.Business{
			"b1": {ID: "b1", Name: "Warung Kopi"},
		}},
		ComplianceRepo: &fakeComplianceRepo{records: records},
	}
}

var june = time.Date(2025, 6, 17, 10, 0, 0, 0, time.UTC)

func TestGetStatus(t *testing.T) {
	svc := newTestService(
		[]models.Worker{{ID: "w1", Name: "Ayu"}},
		[]models.ComplianceRecord{
			{WorkerID: "w1", BusinessID: "b1", Month: "2025-06-01", DaysWorked: 16},
		},
	)

	st, err := svc.GetStatus(context.Background(), "w1", "b1", june)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if st.Status != models.ComplianceStatusWarning {
		t.Errorf("status = %q, want warning at 16 days", st.Status)
	}
	if !st.CanAccept {
		t.Error("CanAccept = false, want true below the limit")
	}
}

func TestGetStatus_NoHistory(t *testing.T) {
	// A pair with no counter document and no booking fallback counts as
	// zero days worked.
	svc := newTestService([]models.Worker{{ID: "w1"}}, nil)

	st, err := svc.GetStatus(context.Background(), "w1", "b1", june)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if st.DaysWorked != 0 || st.Status != models.ComplianceStatusOK {
		t.Errorf("got %d days / %q, want 0 days / ok", st.DaysWorked, st.Status)
	}
}

func TestGetStatus_BookingFallback(t *testing.T) {
	// No counter document yet, but raw bookings exist: the service falls
	// back to counting them.
	svc := newTestService([]models.Worker{{ID: "w1"}}, nil)
	svc.BookingRepo = &fakeDayCounter{days: 21}

	st, err := svc.GetStatus(context.Background(), "w1", "b1", june)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if st.Status != models.ComplianceStatusBlocked {
		t.Errorf("status = %q, want blocked at 21 counted days", st.Status)
	}
}

func TestGetStatus_UnknownWorker(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.GetStatus(context.Background(), "ghost", "b1", june)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("GetStatus() error = %v, want NotFoundError", err)
	}
	if nf.Resource != "worker" {
		t.Errorf("NotFoundError resource = %q, want worker", nf.Resource)
	}
}

func TestGetStatus_RepoFailure(t *testing.T) {
	svc := newTestService([]models.Worker{{ID: "w1"}}, nil)
	svc.ComplianceRepo = &fakeComplianceRepo{err: errors.New("connection reset")}

	_, err := svc.GetStatus(context.Background(), "w1", "b1", june)
	var du *DataUnavailableError
	if !errors.As(err, &du) {
		t.Fatalf("GetStatus() error = %v, want DataUnavailableError", err)
	}
}

func TestRankAlternativeWorkers(t *testing.T) {
	// Day counts 5, 0, 20, 21, 14: the worker at 21 is excluded, the rest
	// come back ordered by fewest days worked.
	workers := []models.Worker{
		{ID: "w1", Name: "Ayu"},
		{ID: "w2", Name: "Budi"},
		{ID: "w3", Name: "Citra"},
		{ID: "w4", Name: "Dewi"},
		{ID: "w5", Name: "Eko"},
	}
	records := []models.ComplianceRecord{
		{WorkerID: "w1", BusinessID: "b1", Month: "2025-06-01", DaysWorked: 5},
		{WorkerID: "w2", BusinessID: "b1", Month: "2025-06-01", DaysWorked: 0},
		{WorkerID: "w3", BusinessID: "b1", Month: "2025-06-01", DaysWorked: 20},
		{WorkerID: "w4", BusinessID: "b1", Month: "2025-06-01", DaysWorked: 21},
		{WorkerID: "w5", BusinessID: "b1", Month: "2025-06-01", DaysWorked: 14},
	}
	svc := newTestService(workers, records)

	got, err := svc.RankAlternativeWorkers(context.Background(), "b1", june)
	if err != nil {
		t.Fatalf("RankAlternativeWorkers() error = %v", err)
	}

	wantOrder := []int{0, 5, 14, 20}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d candidates, want %d", len(got), len(wantOrder))
	}
	for i, want := range wantOrder {
		if got[i].DaysWorked != want {
			t.Errorf("candidate %d daysWorked = %d, want %d", i, got[i].DaysWorked, want)
		}
		if got[i].DaysRemaining != MonthlyDayLimit-want {
			t.Errorf("candidate %d daysRemaining = %d, want %d", i, got[i].DaysRemaining, MonthlyDayLimit-want)
		}
	}
	if got[len(got)-1].WorkerID != "w3" {
		t.Errorf("last candidate = %s, want w3 (20 days)", got[len(got)-1].WorkerID)
	}
}

func TestRankAlternativeWorkers_NoRecords(t *testing.T) {
	// Workers with no record for the month count as zero days.
	svc := newTestService([]models.Worker{{ID: "w1", Name: "Ayu"}}, nil)

	got, err := svc.RankAlternativeWorkers(context.Background(), "b1", june)
	if err != nil {
		t.Fatalf("RankAlternativeWorkers() error = %v", err)
	}
	if len(got) != 1 || got[0].DaysWorked != 0 || got[0].DaysRemaining != MonthlyDayLimit {
		t.Errorf("got %+v, want single candidate with full capacity", got)
	}
}

func TestRankAlternativeWorkers_UnknownBusiness(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.RankAlternativeWorkers(context.Background(), "ghost", june)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("RankAlternativeWorkers() error = %v, want NotFoundError", err)
	}
}
