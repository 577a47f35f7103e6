package handlers

import (
	"errors"
	"net/http"

	"kerjalink/services/booking"
	"kerjalink/services/compliance"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle endpoints.
type BookingHandler struct {
	Service booking.Service
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.Service) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// ApplyHandler creates a pending booking for a worker on a job.
func (h *BookingHandler) ApplyHandler(c *gin.Context) {
	var input struct {
		JobID    string `json:"job_id" binding:"required"`
		WorkerID string `json:"worker_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Service.ApplyToJob(c.Request.Context(), input.JobID, input.WorkerID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// AcceptHandler accepts a pending booking under the monthly day limit and
// returns the one-time attendance code.
func (h *BookingHandler) AcceptHandler(c *gin.Context) {
	bookingID := c.Param("id")

	b, code, err := h.Service.Accept(c.Request.Context(), bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking":         b,
		"attendance_code": code,
	})
}

// RejectHandler declines a pending booking.
func (h *BookingHandler) RejectHandler(c *gin.Context) {
	bookingID := c.Param("id")
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	if err := h.Service.Reject(c.Request.Context(), bookingID, input.Reason); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// CancelHandler aborts a pending or accepted booking.
func (h *BookingHandler) CancelHandler(c *gin.Context) {
	bookingID := c.Param("id")
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	if err := h.Service.Cancel(c.Request.Context(), bookingID, input.Reason); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// CheckInHandler verifies the attendance code and starts the shift.
func (h *BookingHandler) CheckInHandler(c *gin.Context) {
	bookingID := c.Param("id")
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Service.CheckIn(c.Request.Context(), bookingID, input.Code)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CheckOutHandler ends the shift and completes the booking.
func (h *BookingHandler) CheckOutHandler(c *gin.Context) {
	bookingID := c.Param("id")

	b, err := h.Service.CheckOut(c.Request.Context(), bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetHandler retrieves a booking by ID.
func (h *BookingHandler) GetHandler(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListWorkerHandler retrieves a worker's bookings.
func (h *BookingHandler) ListWorkerHandler(c *gin.Context) {
	bookings, err := h.Service.ListWorkerBookings(c.Request.Context(), c.Param("workerID"))
	if err != nil {
		zap.L().Error("Failed to list worker bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListBusinessHandler retrieves a business's bookings, optionally by status.
func (h *BookingHandler) ListBusinessHandler(c *gin.Context) {
	bookings, err := h.Service.ListBusinessBookings(c.Request.Context(), c.Param("businessID"), c.Query("status"))
	if err != nil {
		zap.L().Error("Failed to list business bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// respondBookingError maps booking service errors to HTTP responses.
func respondBookingError(c *gin.Context, err error) {
	var notFound *booking.NotFoundError
	var compNotFound *compliance.NotFoundError
	var invalid *booking.InvalidTransitionError
	var dayLimit *booking.DayLimitError
	var badCode *booking.AttendanceCodeError
	var jobFull *booking.JobFullError

	switch {
	case errors.As(err, &notFound), errors.As(err, &compNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &dayLimit):
		c.JSON(http.StatusConflict, gin.H{
			"error":      err.Error(),
			"compliance": dayLimit.Status,
		})
	case errors.As(err, &badCode):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &jobFull):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		zap.L().Error("Booking operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Booking operation failed"})
	}
}
