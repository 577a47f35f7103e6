package compliance

import (
	"fmt"
	"time"

	"kerjalink/models"
)

// Statutory thresholds under PP 35/2021: a daily worker may work at most
// 21 days per calendar month for the same business. Fixed by regulation,
// not configurable.
const (
	// MonthlyDayLimit is the statutory maximum of days worked per
	// worker-business pair per calendar month.
	MonthlyDayLimit = 21
	// WarningThreshold is the day count at which the status becomes
	// "warning": the booking is still permitted but the limit is near.
	WarningThreshold = 15
)

// MonthKey returns the canonical month identifier for t: the first day of
// the month in "YYYY-MM-DD" form.
func MonthKey(t time.Time) string {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).Format("2006-01-02")
}

// Classify maps a day count to its compliance status and warning level.
// It is a pure function of daysWorked.
func Classify(daysWorked int) (status, warningLevel string) {
	switch {
	case daysWorked >= MonthlyDayLimit:
		return models.ComplianceStatusBlocked, models.WarningLevelLimit
	case daysWorked >= WarningThreshold:
		return models.ComplianceStatusWarning, models.WarningLevelApproaching
	default:
		return models.ComplianceStatusOK, models.WarningLevelNone
	}
}

// BuildStatus assembles the full classification returned to callers,
// including the user-facing message and the acceptance verdict.
func BuildStatus(workerID, businessID, month string, daysWorked int) models.ComplianceStatus {
	status, level := Classify(daysWorked)

	var message string
	switch status {
	case models.ComplianceStatusBlocked:
		message = fmt.Sprintf(
			"Worker has worked %d days for this business this month. The statutory limit of %d days/month (PP 35/2021) has been reached; no further bookings may be accepted this month.",
			daysWorked, MonthlyDayLimit,
		)
	case models.ComplianceStatusWarning:
		message = fmt.Sprintf(
			"Worker has worked %d days for this business this month and is approaching the statutory limit of %d days/month (PP 35/2021).",
			daysWorked, MonthlyDayLimit,
		)
	default:
		message = fmt.Sprintf(
			"Worker has worked %d days for this business this month, within the statutory limit of %d days/month.",
			daysWorked, MonthlyDayLimit,
		)
	}

	return models.ComplianceStatus{
		WorkerID:     workerID,
		BusinessID:   businessID,
		Month:        month,
		DaysWorked:   daysWorked,
		Status:       status,
		WarningLevel: level,
		CanAccept:    status != models.ComplianceStatusBlocked,
		Message:      message,
	}
}
