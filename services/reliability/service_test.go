package reliability

import (
	"context"
	"errors"
	"testing"
	"time"

	"kerjalink/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeWorkerRepo struct {
	worker       *models.Worker
	scoreUpdates []models.ReliabilityScore
}

func (f *fakeWorkerRepo) Create(*models.Worker) error { return nil }
func (f *fakeWorkerRepo) GetByID(id string) (*models.Worker, error) {
	if f.worker != nil && f.worker.ID == id {
		return f.worker, nil
	}
	return nil, nil
}
func (f *fakeWorkerRepo) GetAllWithProjection(bson.M) ([]models.Worker, error) { return nil, nil }
func (f *fakeWorkerRepo) Update(*models.Worker) error                          { return nil }
func (f *fakeWorkerRepo) Delete(string) error                                  { return nil }
func (f *fakeWorkerRepo) UpdateScore(id string, score models.ReliabilityScore, at time.Time) error {
	f.scoreUpdates = append(f.scoreUpdates, score)
	return nil
}

type fakeBookingFetcher struct {
	bookings []models.Booking
	err      error
}

func (f *fakeBookingFetcher) ListByWorker(string) ([]models.Booking, error) {
	return f.bookings, f.err
}

type fakeReviewRepo struct {
	standalone []models.Review
}

func (f *fakeReviewRepo) Create(*models.Review) error                  { return nil }
func (f *fakeReviewRepo) ListByWorker(string) ([]models.Review, error) { return nil, nil }
func (f *fakeReviewRepo) ListStandaloneByWorker(string) ([]models.Review, error) {
	return f.standalone, nil
}

type fakeHistoryRepo struct {
	entries []models.ScoreHistoryEntry
}

func (f *fakeHistoryRepo) Append(e *models.ScoreHistoryEntry) error {
	f.entries = append(f.entries, *e)
	return nil
}
func (f *fakeHistoryRepo) ListByWorker(string, int64) ([]models.ScoreHistoryEntry, error) {
	return f.entries, nil
}

func TestRecomputeScore(t *testing.T) {
	workers := &fakeWorkerRepo{worker: &models.Worker{ID: "w1", Name: "Ayu"}}
	history := &fakeHistoryRepo{}
	svc := &DefaultReliabilityService{
		WorkerRepo:  workers,
		BookingRepo: &fakeBookingFetcher{}, // no bookings: new-worker baseline
		ReviewRepo:  &fakeReviewRepo{},
		HistoryRepo: history,
	}

	score, err := svc.RecomputeScore(context.Background(), "w1")
	if err != nil {
		t.Fatalf("RecomputeScore() error = %v", err)
	}
	if score.Score != ScoreNewWorker {
		t.Errorf("score = %v, want %v for a worker with no bookings", score.Score, ScoreNewWorker)
	}

	// The fresh score is persisted onto the worker record and appended to
	// the history trail.
	if len(workers.scoreUpdates) != 1 {
		t.Errorf("worker score updates = %d, want 1", len(workers.scoreUpdates))
	}
	if len(history.entries) != 1 || history.entries[0].Score != ScoreNewWorker {
		t.Errorf("history entries = %+v, want one entry at %v", history.entries, ScoreNewWorker)
	}
}

func TestRecomputeScore_UnknownWorker(t *testing.T) {
	svc := &DefaultReliabilityService{
		WorkerRepo:  &fakeWorkerRepo{},
		BookingRepo: &fakeBookingFetcher{},
		ReviewRepo:  &fakeReviewRepo{},
	}

	_, err := svc.RecomputeScore(context.Background(), "ghost")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("RecomputeScore() error = %v, want NotFoundError", err)
	}
}

func TestRecomputeScore_BookingFetchFailure(t *testing.T) {
	svc := &DefaultReliabilityService{
		WorkerRepo:  &fakeWorkerRepo{worker: &models.Worker{ID: "w1"}},
		BookingRepo: &fakeBookingFetcher{err: errors.New("connection reset")},
		ReviewRepo:  &fakeReviewRepo{},
	}

	_, err := svc.RecomputeScore(context.Background(), "w1")
	var du *DataUnavailableError
	if !errors.As(err, &du) {
		t.Fatalf("RecomputeScore() error = %v, want DataUnavailableError", err)
	}
}

func TestGetScore_MissFallsThroughToRecompute(t *testing.T) {
	// With no cache configured, GetScore is a recompute.
	rating := 5
	svc := &DefaultReliabilityService{
		WorkerRepo: &fakeWorkerRepo{worker: &models.Worker{ID: "w1"}},
		BookingRepo: &fakeBookingFetcher{bookings: []models.Booking{
			{Status: models.BookingStatusCompleted, Rating: &rating},
		}},
		ReviewRepo: &fakeReviewRepo{},
	}

	score, err := svc.GetScore(context.Background(), "w1")
	if err != nil {
		t.Fatalf("GetScore() error = %v", err)
	}
	if score.Score != 5.0 {
		t.Errorf("score = %v, want 5.0", score.Score)
	}
}

func TestGetScoreHistory(t *testing.T) {
	history := &fakeHistoryRepo{entries: []models.ScoreHistoryEntry{
		{WorkerID: "w1", Score: 4.2},
	}}
	svc := &DefaultReliabilityService{
		WorkerRepo:  &fakeWorkerRepo{worker: &models.Worker{ID: "w1"}},
		HistoryRepo: history,
	}

	entries, err := svc.GetScoreHistory(context.Background(), "w1", 10)
	if err != nil {
		t.Fatalf("GetScoreHistory() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Score != 4.2 {
		t.Errorf("entries = %+v, want the stored trail", entries)
	}
}
