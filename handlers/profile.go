package handlers

import (
	"net/http"
	"time"

	businessRepo "kerjalink/database/repository/business"
	workerRepo "kerjalink/database/repository/worker"
	"kerjalink/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileHandler exposes minimal worker and business profile CRUD needed by
// the marketplace flows.
type ProfileHandler struct {
	WorkerRepo   workerRepo.WorkerRepository
	BusinessRepo businessRepo.BusinessRepository
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(wr workerRepo.WorkerRepository, br businessRepo.BusinessRepository) *ProfileHandler {
	return &ProfileHandler{WorkerRepo: wr, BusinessRepo: br}
}

// CreateWorkerHandler registers a new worker profile.
func (h *ProfileHandler) CreateWorkerHandler(c *gin.Context) {
	var worker models.Worker
	if err := c.ShouldBindJSON(&worker); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if worker.ID == "" {
		worker.ID = uuid.New().String()
	}
	if err := h.WorkerRepo.Create(&worker); err != nil {
		zap.L().Error("Failed to create worker", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create worker"})
		return
	}
	c.JSON(http.StatusCreated, worker)
}

// GetWorkerHandler retrieves a worker profile.
func (h *ProfileHandler) GetWorkerHandler(c *gin.Context) {
	id := c.Param("id")
	worker, err := h.WorkerRepo.GetByID(id)
	if err != nil {
		zap.L().Error("Failed to fetch worker", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch worker"})
		return
	}
	if worker == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
		return
	}
	c.JSON(http.StatusOK, worker)
}

// ListWorkersHandler lists all worker profiles.
func (h *ProfileHandler) ListWorkersHandler(c *gin.Context) {
	workers, err := h.WorkerRepo.GetAllWithProjection(nil)
	if err != nil {
		zap.L().Error("Failed to list workers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list workers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

// UpdateWorkerHandler updates a worker profile.
func (h *ProfileHandler) UpdateWorkerHandler(c *gin.Context) {
	var worker models.Worker
	if err := c.ShouldBindJSON(&worker); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	worker.ID = c.Param("id")
	worker.UpdatedAt = time.Now()
	if err := h.WorkerRepo.Update(&worker); err != nil {
		zap.L().Error("Failed to update worker", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update worker"})
		return
	}
	c.JSON(http.StatusOK, worker)
}

// CreateBusinessHandler registers a new business account.
func (h *ProfileHandler) CreateBusinessHandler(c *gin.Context) {
	var business models.Business
	if err := c.ShouldBindJSON(&business); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if business.ID == "" {
		business.ID = uuid.New().String()
	}
	if err := h.BusinessRepo.Create(&business); err != nil {
		zap.L().Error("Failed to create business", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create business"})
		return
	}
	c.JSON(http.StatusCreated, business)
}

// GetBusinessHandler retrieves a business account.
func (h *ProfileHandler) GetBusinessHandler(c *gin.Context) {
	id := c.Param("id")
	business, err := h.BusinessRepo.GetByID(id)
	if err != nil {
		zap.L().Error("Failed to fetch business", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch business"})
		return
	}
	if business == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}
	c.JSON(http.StatusOK, business)
}
