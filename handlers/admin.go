package handlers

import (
	"net/http"

	"homehelper/models"
	"homehelper/services/booking"
	"homehelper/services/identity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes the admin dashboard endpoints.
type AdminHandler struct {
	Identity *identity.DefaultIdentityService
	Bookings booking.Service
}

// ListUsersHandler returns every user's identity view.
func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.Identity.GetAllUsers(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// ListBookingsHandler returns every booking.
func (h *AdminHandler) ListBookingsHandler(c *gin.Context) {
	bookings, err := h.Bookings.GetAllBookings(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// UpdateBookingStatusHandler moves any booking along its status chain,
// including the refund step after a cancellation.
func (h *AdminHandler) UpdateBookingStatusHandler(c *gin.Context) {
	logger := getLogger(c)
	bookingID := c.Param("id")

	var req struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Bookings.UpdateStatus(c.Request.Context(), bookingID, req.Status)
	if err != nil {
		logger.Warn("Admin status update rejected", zap.String("bookingID", bookingID), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}
