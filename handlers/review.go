package handlers

import (
	"errors"
	"net/http"

	"kerjalink/services/review"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes worker review endpoints.
type ReviewHandler struct {
	Service review.Service
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(svc review.Service) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// SubmitHandler stores a business's review of a worker.
func (h *ReviewHandler) SubmitHandler(c *gin.Context) {
	var input review.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	rev, err := h.Service.Submit(c.Request.Context(), input)
	if err != nil {
		var validation *review.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("Review submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Review submission failed"})
		return
	}
	c.JSON(http.StatusCreated, rev)
}

// ListWorkerHandler returns all reviews for a worker.
func (h *ReviewHandler) ListWorkerHandler(c *gin.Context) {
	reviews, err := h.Service.ListWorkerReviews(c.Request.Context(), c.Param("workerID"))
	if err != nil {
		zap.L().Error("Failed to list reviews", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
