package handlers

import (
	"net/http"

	"homehelper/middleware"
	"homehelper/models"
	"homehelper/services/booking"
	"homehelper/services/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler exposes the provider-facing endpoints: weekly availability
// and the jobs assigned to the provider.
type ProviderHandler struct {
	Availability provider.AvailabilityService
	Bookings     booking.Service
}

// SetAvailabilityHandler replaces the signed-in provider's weekly schedule.
func (h *ProviderHandler) SetAvailabilityHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString(middleware.ContextUserIDKey)

	var req struct {
		Slots []models.Availability `json:"slots" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Availability.SetWeeklyAvailability(providerID, req.Slots); err != nil {
		logger.Warn("Availability update rejected", zap.String("providerID", providerID), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability saved"})
}

// GetAvailabilityHandler returns the signed-in provider's weekly schedule.
func (h *ProviderHandler) GetAvailabilityHandler(c *gin.Context) {
	providerID := c.GetString(middleware.ContextUserIDKey)

	slots, err := h.Availability.GetWeeklyAvailability(providerID)
	if err != nil {
		getLogger(c).Error("Failed to fetch availability", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// JobsHandler lists the bookings assigned to the signed-in provider.
func (h *ProviderHandler) JobsHandler(c *gin.Context) {
	providerID := c.GetString(middleware.ContextUserIDKey)

	bookings, err := h.Bookings.GetProviderBookings(c.Request.Context(), providerID)
	if err != nil {
		getLogger(c).Error("Failed to list provider bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// UpdateJobStatusHandler moves one of the provider's bookings along its
// status chain.
func (h *ProviderHandler) UpdateJobStatusHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString(middleware.ContextUserIDKey)
	bookingID := c.Param("id")

	var req struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	current, err := h.Bookings.GetBooking(c.Request.Context(), bookingID)
	if err != nil || current == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if current.ProviderID != providerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Booking is assigned to another provider"})
		return
	}

	updated, err := h.Bookings.UpdateStatus(c.Request.Context(), bookingID, req.Status)
	if err != nil {
		logger.Warn("Status update rejected", zap.String("bookingID", bookingID), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}
