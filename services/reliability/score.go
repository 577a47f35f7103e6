package reliability

import (
	"math"

	"kerjalink/models"
)

// Weight constants for the reliability score formula.
// They must sum to 1.0.
const (
	weightAttendance  = 0.40
	weightPunctuality = 0.30
	weightRating      = 0.30
)

// Policy defaults. These are business rules, not incidental fallbacks: they
// decide how a worker with little or no history is presented to businesses.
const (
	// ScoreNewWorker is returned for a worker with no bookings at all.
	ScoreNewWorker = 3.0
	// ScoreNoCompletions is returned when the worker has bookings but has
	// never completed one.
	ScoreNoCompletions = 2.5
	// DefaultRating substitutes for the rating component when no ratings
	// exist on completed work.
	DefaultRating = 4.0
	// OnTimeWindowMinutes is the tolerance, in minutes, on either side of
	// the scheduled start within which a check-in counts as on time.
	OnTimeWindowMinutes = 15.0
)

// Score bounds. A worker can never score below MinScore or above MaxScore.
const (
	MinScore = 1.0
	MaxScore = 5.0
)

// Compute derives a worker's reliability score from a snapshot of bookings
// and standalone reviews. It is a pure function: identical input always
// yields an identical score, and it performs no I/O.
//
// Formula:
//
//	attendance  = completed/total * 5            (weight 0.40)
//	punctuality = onTime/completedWithTimes * 5  (weight 0.30)
//	rating      = mean of 1-5 ratings            (weight 0.30)
//	score       = clamp(weighted sum, 1.0, 5.0)
//
// Punctuality defaults to 100% when no completed booking carries check-in
// timestamps; the rating component defaults to 4.0 when no ratings exist.
func Compute(workerID string, bookings []models.Booking, reviews []models.Review) models.ReliabilityScore {
	if len(bookings) == 0 {
		return models.ReliabilityScore{
			WorkerID: workerID,
			Score:    ScoreNewWorker,
			Breakdown: models.ReliabilityBreakdown{
				AttendanceRate:  0,
				PunctualityRate: 100,
				AverageRating:   averageRating(nil, reviews),
			},
		}
	}

	var completed []models.Booking
	for _, b := range bookings {
		if b.Status == models.BookingStatusCompleted {
			completed = append(completed, b)
		}
	}

	if len(completed) == 0 {
		return models.ReliabilityScore{
			WorkerID: workerID,
			Score:    ScoreNoCompletions,
			Breakdown: models.ReliabilityBreakdown{
				AttendanceRate:  0,
				PunctualityRate: 100,
				AverageRating:   averageRating(nil, reviews),
			},
		}
	}

	attendanceRate := float64(len(completed)) / float64(len(bookings))
	punctualityRate := punctuality(completed)
	avg := averageRating(completed, reviews)

	ratingComponent := DefaultRating
	if avg != nil {
		ratingComponent = *avg
	}

	score := weightAttendance*(attendanceRate*5.0) +
		weightPunctuality*(punctualityRate*5.0) +
		weightRating*ratingComponent

	return models.ReliabilityScore{
		WorkerID: workerID,
		Score:    round2(clamp(score, MinScore, MaxScore)),
		Breakdown: models.ReliabilityBreakdown{
			AttendanceRate:  round2(attendanceRate * 100),
			PunctualityRate: round2(punctualityRate * 100),
			AverageRating:   avg,
		},
	}
}

// punctuality returns the on-time fraction (0-1) over completed bookings
// that carry both an actual check-in and a scheduled start. With no time
// data at all the rate is 1.0: missing instrumentation is not a penalty.
func punctuality(completed []models.Booking) float64 {
	withTimes := 0
	onTime := 0
	for _, b := range completed {
		if b.ActualStart == nil || b.ScheduledStart.IsZero() {
			continue
		}
		withTimes++
		delta := b.ActualStart.Sub(b.ScheduledStart).Minutes()
		if delta >= -OnTimeWindowMinutes && delta <= OnTimeWindowMinutes {
			onTime++
		}
	}
	if withTimes == 0 {
		return 1.0
	}
	return float64(onTime) / float64(withTimes)
}

// averageRating returns the mean of ratings on completed bookings plus
// standalone reviews, or nil when no ratings exist.
func averageRating(completed []models.Booking, reviews []models.Review) *float64 {
	sum := 0.0
	count := 0
	for _, b := range completed {
		if b.Rating != nil {
			sum += float64(*b.Rating)
			count++
		}
	}
	for _, r := range reviews {
		if r.Rating >= 1 && r.Rating <= 5 {
			sum += float64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := round2(sum / float64(count))
	return &avg
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
