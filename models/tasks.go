package models

// ScoreRecomputePayload is the asynq payload for a reliability score
// recompute task.
type ScoreRecomputePayload struct {
	WorkerID string `json:"workerId"`
	Reason   string `json:"reason"` // e.g. "booking_completed", "review_submitted"
}
