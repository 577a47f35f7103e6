package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "kerjalink/database/repository/booking"
	"kerjalink/models"
	"kerjalink/services/compliance"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// --- in-memory fakes ---

type fakeBookingRepo struct {
	bookings  map[string]*models.Booking
	acceptErr error
}

func newFakeBookingRepo(bookings ...*models.Booking) *fakeBookingRepo {
	m := make(map[string]*models.Booking)
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeBookingRepo{bookings: m}
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) ListByWorker(workerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.WorkerID == workerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByJob(jobID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.JobID == jobID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByBusiness(businessID, status string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.BusinessID == businessID && (status == "" || b.Status == status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(id, from, to, reason string) error {
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return errors.New("no booking matched the transition filter")
	}
	b.Status = to
	b.CancelReason = reason
	return nil
}

func (f *fakeBookingRepo) SetCheckIn(id string, at time.Time) error {
	b := f.bookings[id]
	b.Status = models.BookingStatusInProgress
	b.ActualStart = &at
	return nil
}

func (f *fakeBookingRepo) SetCheckOut(id string, at time.Time) error {
	b := f.bookings[id]
	b.Status = models.BookingStatusCompleted
	b.ActualEnd = &at
	return nil
}

func (f *fakeBookingRepo) SetRating(id string, rating int) error {
	f.bookings[id].Rating = &rating
	return nil
}

func (f *fakeBookingRepo) CountWorkedDays(workerID, businessID string, from, to time.Time) (int, error) {
	return 0, nil
}

func (f *fakeBookingRepo) AcceptWithinDayLimit(ctx context.Context, b *models.Booking, codeHash, month string, limit int) error {
	if f.acceptErr != nil {
		return f.acceptErr
	}
	stored := f.bookings[b.ID]
	stored.Status = models.BookingStatusAccepted
	stored.AttendanceCodeHash = codeHash
	return nil
}

type fakeJobRepo struct {
	jobs map[string]*models.Job
}

func (f *fakeJobRepo) Create(j *models.Job) error               { f.jobs[j.ID] = j; return nil }
func (f *fakeJobRepo) GetByID(id string) (*models.Job, error)   { return f.jobs[id], nil }
func (f *fakeJobRepo) ListOpen(string) ([]models.Job, error)    { return nil, nil }
func (f *fakeJobRepo) ListByBusiness(string) ([]models.Job, error) { return nil, nil }
func (f *fakeJobRepo) Close(id string) error                    { f.jobs[id].Status = models.JobStatusClosed; return nil }
func (f *fakeJobRepo) IncrementFilled(ctx context.Context, id string) error {
	f.jobs[id].Filled++
	return nil
}

type fakeWorkerRepo struct {
	workers map[string]*models.Worker
}

func (f *fakeWorkerRepo) Create(*models.Worker) error { return nil }
func (f *fakeWorkerRepo) GetByID(id string) (*models.Worker, error) {
	return f.workers[id], nil
}
func (f *fakeWorkerRepo) GetAllWithProjection(bson.M) ([]models.Worker, error) { return nil, nil }
func (f *fakeWorkerRepo) Update(*models.Worker) error                          { return nil }
func (f *fakeWorkerRepo) Delete(string) error                                  { return nil }
func (f *fakeWorkerRepo) UpdateScore(string, models.ReliabilityScore, time.Time) error {
	return nil
}

type fakeWalletRepo struct {
	credits []*models.WalletTransaction
	err     error
}

func (f *fakeWalletRepo) GetByWorker(string) (*models.Wallet, error) { return nil, nil }
func (f *fakeWalletRepo) ListTransactions(string, int64) ([]models.WalletTransaction, error) {
	return nil, nil
}
func (f *fakeWalletRepo) Credit(txn *models.WalletTransaction) error {
	if f.err != nil {
		return f.err
	}
	f.credits = append(f.credits, txn)
	return nil
}
func (f *fakeWalletRepo) Withdraw(*models.WalletTransaction) error { return nil }

// fakeCompliance returns a canned classification for every pair.
type fakeCompliance struct {
	daysWorked int
}

func (f *fakeCompliance) canned(workerID, businessID string) *models.ComplianceStatus {
	st := compliance.BuildStatus(workerID, businessID, "2025-06-01", f.daysWorked)
	return &st
}

func (f *fakeCompliance) GetStatus(ctx context.Context, workerID, businessID string, t time.Time) (*models.ComplianceStatus, error) {
	return f.canned(workerID, businessID), nil
}

func (f *fakeCompliance) CheckAcceptance(ctx context.Context, workerID, businessID string, t time.Time) (*models.ComplianceStatus, error) {
	return f.canned(workerID, businessID), nil
}

func (f *fakeCompliance) RankAlternativeWorkers(ctx context.Context, businessID string, t time.Time) ([]models.AlternativeWorker, error) {
	return nil, nil
}

type fakeEnqueuer struct {
	enqueued []*asynq.Task
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.enqueued = append(f.enqueued, task)
	return &asynq.TaskInfo{}, nil
}

// --- fixtures ---

var shiftStart = time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

func pendingBooking() *models.Booking {
	return &models.Booking{
		ID:             "bk1",
		JobID:          "j1",
		WorkerID:       "w1",
		BusinessID:     "b1",
		Status:         models.BookingStatusPending,
		ScheduledStart: shiftStart,
		ScheduledEnd:   shiftStart.Add(8 * time.Hour),
		PayAmount:      150000,
	}
}

func newTestService(repo *fakeBookingRepo, daysWorked int) (*DefaultBookingService, *fakeWalletRepo, *fakeEnqueuer) {
	wallet := &fakeWalletRepo{}
	queue := &fakeEnqueuer{}
	svc := &DefaultBookingService{
		BookingRepo: repo,
		JobRepo: &fakeJobRepo{jobs: map[string]*models.Job{
			"j1": {
				ID: "j1", BusinessID: "b1", Title: "Barista shift",
				Status: models.JobStatusOpen, Slots: 2, Filled: 0,
				ShiftStart: shiftStart, ShiftEnd: shiftStart.Add(8 * time.Hour),
				PayAmount: 150000,
			},
		}},
		WorkerRepo: &fakeWorkerRepo{workers: map[string]*models.Worker{
			"w1": {ID: "w1", Name: "Ayu"},
		}},
		WalletRepo: wallet,
		Compliance: &fakeCompliance{daysWorked: daysWorked},
		Tasks:      queue,
	}
	return svc, wallet, queue
}

// --- tests ---

func TestApplyToJob(t *testing.T) {
	repo := newFakeBookingRepo()
	svc, _, _ := newTestService(repo, 0)

	b, err := svc.ApplyToJob(context.Background(), "j1", "w1")
	if err != nil {
		t.Fatalf("ApplyToJob() error = %v", err)
	}
	if b.Status != models.BookingStatusPending {
		t.Errorf("status = %q, want pending", b.Status)
	}
	if b.BusinessID != "b1" || !b.ScheduledStart.Equal(shiftStart) {
		t.Errorf("booking did not inherit job fields: %+v", b)
	}

	// A second application while the first is still active is refused.
	if _, err := svc.ApplyToJob(context.Background(), "j1", "w1"); err == nil {
		t.Error("ApplyToJob() second active application succeeded, want error")
	}
}

func TestApplyToJob_FullJob(t *testing.T) {
	repo := newFakeBookingRepo()
	svc, _, _ := newTestService(repo, 0)
	job, _ := svc.JobRepo.GetByID("j1")
	job.Filled = job.Slots

	_, err := svc.ApplyToJob(context.Background(), "j1", "w1")
	var full *JobFullError
	if !errors.As(err, &full) {
		t.Fatalf("ApplyToJob() error = %v, want JobFullError", err)
	}
}

func TestAccept(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking())
	svc, _, _ := newTestService(repo, 10)

	b, code, err := svc.Accept(context.Background(), "bk1")
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if b.Status != models.BookingStatusAccepted {
		t.Errorf("status = %q, want accepted", b.Status)
	}
	if len(code) != 6 {
		t.Errorf("attendance code = %q, want 6 characters", code)
	}
	// The stored hash must verify against the returned plaintext code.
	if bcrypt.CompareHashAndPassword([]byte(b.AttendanceCodeHash), []byte(code)) != nil {
		t.Error("attendance code hash does not match the issued code")
	}
}

func TestAccept_BlockedAtLimit(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking())
	svc, _, _ := newTestService(repo, 21)

	_, _, err := svc.Accept(context.Background(), "bk1")
	var limit *DayLimitError
	if !errors.As(err, &limit) {
		t.Fatalf("Accept() error = %v, want DayLimitError", err)
	}
	if limit.Status.CanAccept {
		t.Error("DayLimitError carries CanAccept = true")
	}
	if b, _ := repo.GetByID("bk1"); b.Status != models.BookingStatusPending {
		t.Errorf("booking status = %q, want still pending after refusal", b.Status)
	}
}

func TestAccept_RaceLosesToCounter(t *testing.T) {
	// The advisory check passes but the transactional counter increment
	// reports the limit: a concurrent accept got there first.
	repo := newFakeBookingRepo(pendingBooking())
	repo.acceptErr = bookingRepo.ErrDayLimitReached
	svc, _, _ := newTestService(repo, 20)

	_, _, err := svc.Accept(context.Background(), "bk1")
	var limit *DayLimitError
	if !errors.As(err, &limit) {
		t.Fatalf("Accept() error = %v, want DayLimitError from the transaction", err)
	}
}

func TestAccept_NotPending(t *testing.T) {
	b := pendingBooking()
	b.Status = models.BookingStatusCancelled
	repo := newFakeBookingRepo(b)
	svc, _, _ := newTestService(repo, 0)

	_, _, err := svc.Accept(context.Background(), "bk1")
	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("Accept() error = %v, want InvalidTransitionError", err)
	}
}

func TestRejectAndCancel(t *testing.T) {
	t.Run("reject pending", func(t *testing.T) {
		repo := newFakeBookingRepo(pendingBooking())
		svc, _, _ := newTestService(repo, 0)

		if err := svc.Reject(context.Background(), "bk1", "position filled"); err != nil {
			t.Fatalf("Reject() error = %v", err)
		}
		if b, _ := repo.GetByID("bk1"); b.Status != models.BookingStatusRejected {
			t.Errorf("status = %q, want rejected", b.Status)
		}
	})

	t.Run("cancel accepted", func(t *testing.T) {
		b := pendingBooking()
		b.Status = models.BookingStatusAccepted
		repo := newFakeBookingRepo(b)
		svc, _, _ := newTestService(repo, 0)

		if err := svc.Cancel(context.Background(), "bk1", "worker sick"); err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}
		if got, _ := repo.GetByID("bk1"); got.Status != models.BookingStatusCancelled {
			t.Errorf("status = %q, want cancelled", got.Status)
		}
	})

	t.Run("cancel completed is refused", func(t *testing.T) {
		b := pendingBooking()
		b.Status = models.BookingStatusCompleted
		repo := newFakeBookingRepo(b)
		svc, _, _ := newTestService(repo, 0)

		err := svc.Cancel(context.Background(), "bk1", "")
		var invalid *InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Fatalf("Cancel() error = %v, want InvalidTransitionError", err)
		}
	})
}

func TestCheckIn(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("A1B2C3"), bcrypt.MinCost)
	b := pendingBooking()
	b.Status = models.BookingStatusAccepted
	b.AttendanceCodeHash = string(hash)
	repo := newFakeBookingRepo(b)
	svc, _, _ := newTestService(repo, 0)

	t.Run("wrong code", func(t *testing.T) {
		_, err := svc.CheckIn(context.Background(), "bk1", "WRONG0")
		var bad *AttendanceCodeError
		if !errors.As(err, &bad) {
			t.Fatalf("CheckIn() error = %v, want AttendanceCodeError", err)
		}
	})

	t.Run("correct code", func(t *testing.T) {
		got, err := svc.CheckIn(context.Background(), "bk1", "A1B2C3")
		if err != nil {
			t.Fatalf("CheckIn() error = %v", err)
		}
		if got.Status != models.BookingStatusInProgress {
			t.Errorf("status = %q, want in_progress", got.Status)
		}
		if got.ActualStart == nil {
			t.Error("ActualStart not stamped on check-in")
		}
	})
}

func TestCheckOut(t *testing.T) {
	b := pendingBooking()
	b.Status = models.BookingStatusInProgress
	repo := newFakeBookingRepo(b)
	svc, wallet, queue := newTestService(repo, 0)

	got, err := svc.CheckOut(context.Background(), "bk1")
	if err != nil {
		t.Fatalf("CheckOut() error = %v", err)
	}
	if got.Status != models.BookingStatusCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}
	if got.ActualEnd == nil {
		t.Error("ActualEnd not stamped on check-out")
	}

	if len(wallet.credits) != 1 {
		t.Fatalf("wallet credits = %d, want 1", len(wallet.credits))
	}
	if wallet.credits[0].Amount != 150000 || wallet.credits[0].Type != models.WalletTxnCredit {
		t.Errorf("credit = %+v, want shift pay of 150000", wallet.credits[0])
	}

	if len(queue.enqueued) != 1 {
		t.Fatalf("enqueued tasks = %d, want score recompute", len(queue.enqueued))
	}
}

func TestCheckOut_WalletFailureDoesNotBlock(t *testing.T) {
	b := pendingBooking()
	b.Status = models.BookingStatusInProgress
	repo := newFakeBookingRepo(b)
	svc, wallet, _ := newTestService(repo, 0)
	wallet.err = errors.New("ledger unavailable")

	got, err := svc.CheckOut(context.Background(), "bk1")
	if err != nil {
		t.Fatalf("CheckOut() error = %v, want completion despite wallet failure", err)
	}
	if got.Status != models.BookingStatusCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}
}

func TestCheckOut_RequiresInProgress(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking())
	svc, _, _ := newTestService(repo, 0)

	_, err := svc.CheckOut(context.Background(), "bk1")
	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("CheckOut() error = %v, want InvalidTransitionError", err)
	}
}
