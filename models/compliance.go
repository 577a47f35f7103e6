package models

import "time"

// Compliance statuses under the PP 35/2021 daily-worker day limit.
const (
	ComplianceStatusOK      = "ok"
	ComplianceStatusWarning = "warning"
	ComplianceStatusBlocked = "blocked"
)

// Warning levels paired with the statuses above.
const (
	WarningLevelNone        = "none"
	WarningLevelApproaching = "approaching"
	WarningLevelLimit       = "limit"
)

// ComplianceRecord is the per worker x business x month day counter.
// Month is keyed by its first day ("2026-08-01").
type ComplianceRecord struct {
	WorkerID   string    `bson:"worker_id" json:"worker_id"`
	BusinessID string    `bson:"business_id" json:"business_id"`
	Month      string    `bson:"month" json:"month"` // "YYYY-MM-01"
	DaysWorked int       `bson:"days_worked" json:"days_worked"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// ComplianceStatus is the classification returned to callers.
type ComplianceStatus struct {
	WorkerID     string `json:"worker_id"`
	BusinessID   string `json:"business_id"`
	Month        string `json:"month"`
	DaysWorked   int    `json:"days_worked"`
	Status       string `json:"status"`        // "ok" | "warning" | "blocked"
	WarningLevel string `json:"warning_level"` // "none" | "approaching" | "limit"
	CanAccept    bool   `json:"can_accept"`
	Message      string `json:"message"`
}

// AlternativeWorker is one ranked candidate for a business with remaining
// monthly capacity.
type AlternativeWorker struct {
	WorkerID         string  `json:"worker_id"`
	Name             string  `json:"name"`
	DaysWorked       int     `json:"days_worked"`
	DaysRemaining    int     `json:"days_remaining"`
	ReliabilityScore float64 `json:"reliability_score,omitempty"`
}
