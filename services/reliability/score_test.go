package reliability

import (
	"math"
	"testing"
	"time"

	"kerjalink/models"
)

// almostEqual returns true if a and b are within epsilon of each other.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

var shiftStart = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

// completedBooking builds a completed booking with a check-in offset (in
// minutes) from the scheduled start and an optional rating.
func completedBooking(offsetMinutes float64, rating *int) models.Booking {
	actual := shiftStart.Add(time.Duration(offsetMinutes * float64(time.Minute)))
	return models.Booking{
		Status:         models.BookingStatusCompleted,
		ScheduledStart: shiftStart,
		ActualStart:    &actual,
		Rating:         rating,
	}
}

func intPtr(v int) *int { return &v }

func TestCompute_Defaults(t *testing.T) {
	tests := []struct {
		name      string
		bookings  []models.Booking
		reviews   []models.Review
		wantScore float64
	}{
		{
			name:      "no bookings at all — new worker baseline",
			bookings:  nil,
			wantScore: 3.0,
		},
		{
			name: "bookings but none completed",
			bookings: []models.Booking{
				{Status: models.BookingStatusCancelled},
				{Status: models.BookingStatusPending},
				{Status: models.BookingStatusAccepted},
			},
			wantScore: 2.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute("w1", tt.bookings, tt.reviews)
			if got.Score != tt.wantScore {
				t.Errorf("Compute() score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.WorkerID != "w1" {
				t.Errorf("Compute() workerID = %q, want %q", got.WorkerID, "w1")
			}
		})
	}
}

func TestCompute_PerfectRecord(t *testing.T) {
	// All bookings completed, every check-in on time, every rating a 5.
	var bookings []models.Booking
	for i := 0; i < 6; i++ {
		bookings = append(bookings, completedBooking(0, intPtr(5)))
	}

	got := Compute("w1", bookings, nil)
	if got.Score != 5.0 {
		t.Fatalf("Compute() score = %v, want 5.0", got.Score)
	}
	if got.Breakdown.AttendanceRate != 100 {
		t.Errorf("attendance rate = %v, want 100", got.Breakdown.AttendanceRate)
	}
	if got.Breakdown.PunctualityRate != 100 {
		t.Errorf("punctuality rate = %v, want 100", got.Breakdown.PunctualityRate)
	}
}

func TestCompute_WeightedExample(t *testing.T) {
	// 10 bookings, 8 completed, 6 of the 8 on time, ratings averaging 4.2:
	// 0.40*(8/10*5) + 0.30*(6/8*5) + 0.30*4.2 = 1.6 + 1.125 + 1.26 = 3.985,
	// rounded to 3.99.
	ratings := []*int{intPtr(5), intPtr(5), intPtr(4), intPtr(4), intPtr(3), nil, nil, nil}
	var bookings []models.Booking
	for i := 0; i < 8; i++ {
		offset := 5.0 // within the 15-minute window
		if i >= 6 {
			offset = 40.0 // late
		}
		bookings = append(bookings, completedBooking(offset, ratings[i]))
	}
	bookings = append(bookings,
		models.Booking{Status: models.BookingStatusCancelled},
		models.Booking{Status: models.BookingStatusRejected},
	)

	got := Compute("w1", bookings, nil)
	if !almostEqual(got.Score, 3.99, 1e-9) {
		t.Fatalf("Compute() score = %v, want 3.99", got.Score)
	}
	if got.Breakdown.AttendanceRate != 80 {
		t.Errorf("attendance rate = %v, want 80", got.Breakdown.AttendanceRate)
	}
	if got.Breakdown.PunctualityRate != 75 {
		t.Errorf("punctuality rate = %v, want 75", got.Breakdown.PunctualityRate)
	}
	if got.Breakdown.AverageRating == nil || !almostEqual(*got.Breakdown.AverageRating, 4.2, 1e-9) {
		t.Errorf("average rating = %v, want 4.2", got.Breakdown.AverageRating)
	}
}

func TestCompute_ClampFloor(t *testing.T) {
	// 1 completed out of 10, checked in late, rated 1. The raw weighted sum
	// is 0.4*0.5 + 0 + 0.3*1 = 0.5, which must clamp up to 1.0.
	bookings := []models.Booking{completedBooking(45, intPtr(1))}
	for i := 0; i < 9; i++ {
		bookings = append(bookings, models.Booking{Status: models.BookingStatusCancelled})
	}

	got := Compute("w1", bookings, nil)
	if got.Score != MinScore {
		t.Fatalf("Compute() score = %v, want clamp to %v", got.Score, MinScore)
	}
}

func TestCompute_Bounds(t *testing.T) {
	// A spread of inputs; every result must land in [1.0, 5.0].
	cases := [][]models.Booking{
		nil,
		{completedBooking(0, intPtr(5))},
		{completedBooking(120, intPtr(1))},
		{completedBooking(-30, nil), {Status: models.BookingStatusCancelled}},
	}
	for i, bookings := range cases {
		got := Compute("w1", bookings, nil)
		if got.Score < MinScore || got.Score > MaxScore {
			t.Errorf("case %d: score %v outside [%v, %v]", i, got.Score, MinScore, MaxScore)
		}
	}
}

func TestCompute_DefaultRatingWhenUnrated(t *testing.T) {
	// Completed work with no ratings anywhere uses the 4.0 default for the
	// rating component: 0.40*5 + 0.30*5 + 0.30*4.0 = 4.7.
	bookings := []models.Booking{
		completedBooking(0, nil),
		completedBooking(0, nil),
	}

	got := Compute("w1", bookings, nil)
	if !almostEqual(got.Score, 4.7, 1e-9) {
		t.Fatalf("Compute() score = %v, want 4.7", got.Score)
	}
	if got.Breakdown.AverageRating != nil {
		t.Errorf("average rating = %v, want nil when no ratings exist", *got.Breakdown.AverageRating)
	}
}

func TestCompute_NoTimeDataCountsAsOnTime(t *testing.T) {
	// Completed bookings with no check-in timestamps: punctuality defaults
	// to 100%, not 0%.
	bookings := []models.Booking{
		{Status: models.BookingStatusCompleted, Rating: intPtr(5)},
		{Status: models.BookingStatusCompleted, Rating: intPtr(5)},
	}

	got := Compute("w1", bookings, nil)
	if got.Breakdown.PunctualityRate != 100 {
		t.Fatalf("punctuality rate = %v, want 100 with no time data", got.Breakdown.PunctualityRate)
	}
	if got.Score != 5.0 {
		t.Errorf("Compute() score = %v, want 5.0", got.Score)
	}
}

func TestCompute_StandaloneReviewsCount(t *testing.T) {
	// A single unrated completed booking plus two standalone reviews: the
	// rating component is the review mean, not the 4.0 default.
	bookings := []models.Booking{completedBooking(0, nil)}
	reviews := []models.Review{
		{Rating: 2},
		{Rating: 4},
	}

	got := Compute("w1", bookings, reviews)
	if got.Breakdown.AverageRating == nil || *got.Breakdown.AverageRating != 3.0 {
		t.Fatalf("average rating = %v, want 3.0 from standalone reviews", got.Breakdown.AverageRating)
	}
	// 0.40*5 + 0.30*5 + 0.30*3 = 4.4
	if !almostEqual(got.Score, 4.4, 1e-9) {
		t.Errorf("Compute() score = %v, want 4.4", got.Score)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	bookings := []models.Booking{
		completedBooking(10, intPtr(4)),
		completedBooking(-10, intPtr(5)),
		{Status: models.BookingStatusCancelled},
	}

	first := Compute("w1", bookings, nil)
	second := Compute("w1", bookings, nil)
	if first.Score != second.Score {
		t.Fatalf("Compute() not deterministic: %v vs %v", first.Score, second.Score)
	}
	if first.Breakdown.AttendanceRate != second.Breakdown.AttendanceRate ||
		first.Breakdown.PunctualityRate != second.Breakdown.PunctualityRate {
		t.Errorf("Compute() breakdown differs between identical runs")
	}
}

func TestPunctuality_WindowEdges(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		onTime bool
	}{
		{"exactly on time", 0, true},
		{"15 minutes late — edge of window", 15, true},
		{"15 minutes early — edge of window", -15, true},
		{"16 minutes late", 16, false},
		{"an hour early", -60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := punctuality([]models.Booking{completedBooking(tt.offset, nil)})
			want := 0.0
			if tt.onTime {
				want = 1.0
			}
			if rate != want {
				t.Errorf("punctuality(offset=%v) = %v, want %v", tt.offset, rate, want)
			}
		})
	}
}
