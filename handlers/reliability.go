package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"kerjalink/services/reliability"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReliabilityHandler exposes the worker reliability score endpoints.
type ReliabilityHandler struct {
	Service reliability.Service
}

// NewReliabilityHandler creates a new ReliabilityHandler.
func NewReliabilityHandler(svc reliability.Service) *ReliabilityHandler {
	return &ReliabilityHandler{Service: svc}
}

// GetScoreHandler returns the current reliability score for a worker.
func (h *ReliabilityHandler) GetScoreHandler(c *gin.Context) {
	score, err := h.Service.GetScore(c.Request.Context(), c.Param("workerID"))
	if err != nil {
		respondReliabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

// RecomputeHandler forces a fresh computation, bypassing the cache.
func (h *ReliabilityHandler) RecomputeHandler(c *gin.Context) {
	score, err := h.Service.RecomputeScore(c.Request.Context(), c.Param("workerID"))
	if err != nil {
		respondReliabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

// HistoryHandler returns recent score history entries for trend charts.
func (h *ReliabilityHandler) HistoryHandler(c *gin.Context) {
	limit := int64(30)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := h.Service.GetScoreHistory(c.Request.Context(), c.Param("workerID"), limit)
	if err != nil {
		respondReliabilityError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func respondReliabilityError(c *gin.Context, err error) {
	var notFound *reliability.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	zap.L().Error("Reliability operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Reliability operation failed"})
}
