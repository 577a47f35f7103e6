package compliance

import (
	"strings"
	"testing"
	"time"

	"kerjalink/models"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		name       string
		days       int
		wantStatus string
		wantLevel  string
	}{
		{"fresh month", 0, models.ComplianceStatusOK, models.WarningLevelNone},
		{"mid month", 10, models.ComplianceStatusOK, models.WarningLevelNone},
		{"one below warning", 14, models.ComplianceStatusOK, models.WarningLevelNone},
		{"warning threshold", 15, models.ComplianceStatusWarning, models.WarningLevelApproaching},
		{"one below limit", 20, models.ComplianceStatusWarning, models.WarningLevelApproaching},
		{"at the limit", 21, models.ComplianceStatusBlocked, models.WarningLevelLimit},
		{"over the limit", 25, models.ComplianceStatusBlocked, models.WarningLevelLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, level := Classify(tt.days)
			if status != tt.wantStatus {
				t.Errorf("Classify(%d) status = %q, want %q", tt.days, status, tt.wantStatus)
			}
			if level != tt.wantLevel {
				t.Errorf("Classify(%d) level = %q, want %q", tt.days, level, tt.wantLevel)
			}
		})
	}
}

func TestBuildStatus(t *testing.T) {
	t.Run("blocked refuses acceptance", func(t *testing.T) {
		st := BuildStatus("w1", "b1", "2025-06-01", 21)
		if st.CanAccept {
			t.Error("BuildStatus(21 days) CanAccept = true, want false")
		}
		if !strings.Contains(st.Message, "21 days") {
			t.Errorf("message %q does not state the day count", st.Message)
		}
		if !strings.Contains(st.Message, "PP 35/2021") {
			t.Errorf("message %q does not cite the regulation", st.Message)
		}
	})

	t.Run("warning still accepts", func(t *testing.T) {
		st := BuildStatus("w1", "b1", "2025-06-01", 15)
		if !st.CanAccept {
			t.Error("BuildStatus(15 days) CanAccept = false, want true")
		}
		if st.Status != models.ComplianceStatusWarning {
			t.Errorf("status = %q, want %q", st.Status, models.ComplianceStatusWarning)
		}
	})

	t.Run("ok carries pair identity", func(t *testing.T) {
		st := BuildStatus("w1", "b1", "2025-06-01", 3)
		if st.WorkerID != "w1" || st.BusinessID != "b1" || st.Month != "2025-06-01" {
			t.Errorf("status identity = %s/%s/%s, want w1/b1/2025-06-01", st.WorkerID, st.BusinessID, st.Month)
		}
		if st.DaysWorked != 3 {
			t.Errorf("daysWorked = %d, want 3", st.DaysWorked)
		}
	})
}

func TestMonthKey(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"mid month", time.Date(2025, 6, 17, 14, 30, 0, 0, time.UTC), "2025-06-01"},
		{"first of month", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "2025-01-01"},
		{"last instant of month", time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC), "2025-12-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthKey(tt.in); got != tt.want {
				t.Errorf("MonthKey(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
