package handlers

import (
	"errors"
	"net/http"
	"time"

	"kerjalink/services/compliance"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ComplianceHandler exposes the PP 35/2021 day-limit endpoints.
type ComplianceHandler struct {
	Service compliance.Service
}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler(svc compliance.Service) *ComplianceHandler {
	return &ComplianceHandler{Service: svc}
}

// GetStatusHandler classifies a worker-business pair for a month.
// Month comes from the optional "month" query ("YYYY-MM"); default is now.
func (h *ComplianceHandler) GetStatusHandler(c *gin.Context) {
	workerID := c.Param("workerID")
	businessID := c.Param("businessID")

	month, ok := parseMonth(c)
	if !ok {
		return
	}

	status, err := h.Service.GetStatus(c.Request.Context(), workerID, businessID, month)
	if err != nil {
		respondComplianceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// CheckAcceptanceHandler is the advisory pre-accept gate for the UI.
func (h *ComplianceHandler) CheckAcceptanceHandler(c *gin.Context) {
	workerID := c.Param("workerID")
	businessID := c.Param("businessID")

	month, ok := parseMonth(c)
	if !ok {
		return
	}

	status, err := h.Service.CheckAcceptance(c.Request.Context(), workerID, businessID, month)
	if err != nil {
		respondComplianceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"can_accept": status.CanAccept,
		"compliance": status,
	})
}

// AlternativesHandler ranks non-blocked workers by remaining capacity.
func (h *ComplianceHandler) AlternativesHandler(c *gin.Context) {
	businessID := c.Param("businessID")

	month, ok := parseMonth(c)
	if !ok {
		return
	}

	workers, err := h.Service.RankAlternativeWorkers(c.Request.Context(), businessID, month)
	if err != nil {
		respondComplianceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

func parseMonth(c *gin.Context) (time.Time, bool) {
	raw := c.Query("month")
	if raw == "" {
		return time.Now(), true
	}
	month, err := time.Parse("2006-01", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, expected YYYY-MM"})
		return time.Time{}, false
	}
	return month, true
}

func respondComplianceError(c *gin.Context, err error) {
	var notFound *compliance.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	zap.L().Error("Compliance operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Compliance operation failed"})
}
