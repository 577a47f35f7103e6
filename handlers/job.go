package handlers

import (
	"errors"
	"net/http"

	"kerjalink/services/job"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JobHandler exposes job post endpoints.
type JobHandler struct {
	Service job.Service
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(svc job.Service) *JobHandler {
	return &JobHandler{Service: svc}
}

// CreateHandler posts a new job.
func (h *JobHandler) CreateHandler(c *gin.Context) {
	var input job.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	j, err := h.Service.CreateJob(c.Request.Context(), input)
	if err != nil {
		respondJobError(c, err)
		return
	}
	c.JSON(http.StatusCreated, j)
}

// GetHandler retrieves a job post by ID.
func (h *JobHandler) GetHandler(c *gin.Context) {
	j, err := h.Service.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondJobError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

// ListOpenHandler lists open jobs, optionally filtered by city.
func (h *JobHandler) ListOpenHandler(c *gin.Context) {
	jobs, err := h.Service.ListOpenJobs(c.Request.Context(), c.Query("city"))
	if err != nil {
		zap.L().Error("Failed to list open jobs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// ListBusinessHandler lists a business's job posts.
func (h *JobHandler) ListBusinessHandler(c *gin.Context) {
	jobs, err := h.Service.ListBusinessJobs(c.Request.Context(), c.Param("businessID"))
	if err != nil {
		zap.L().Error("Failed to list business jobs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// CloseHandler closes a job post.
func (h *JobHandler) CloseHandler(c *gin.Context) {
	if err := h.Service.CloseJob(c.Request.Context(), c.Param("id")); err != nil {
		respondJobError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}

func respondJobError(c *gin.Context, err error) {
	var validation *job.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	zap.L().Error("Job operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Job operation failed"})
}
