package models

import "time"

// ReliabilityBreakdown carries the per-dimension rates behind a score.
type ReliabilityBreakdown struct {
	AttendanceRate  float64  `bson:"attendance_rate" json:"attendance_rate"`   // 0-100
	PunctualityRate float64  `bson:"punctuality_rate" json:"punctuality_rate"` // 0-100
	AverageRating   *float64 `bson:"average_rating,omitempty" json:"average_rating,omitempty"` // 1-5, nil when no ratings exist
}

// ReliabilityScore is the derived score for a worker, in [1.0, 5.0].
type ReliabilityScore struct {
	WorkerID  string               `bson:"worker_id" json:"worker_id"`
	Score     float64              `bson:"score" json:"score"`
	Breakdown ReliabilityBreakdown `bson:"breakdown" json:"breakdown"`
}

// ScoreHistoryEntry is one append-only record in a worker's score log,
// used for trend charts.
type ScoreHistoryEntry struct {
	ID        string               `bson:"id" json:"id"`
	WorkerID  string               `bson:"worker_id" json:"worker_id"`
	Score     float64              `bson:"score" json:"score"`
	Breakdown ReliabilityBreakdown `bson:"breakdown" json:"breakdown"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
}
