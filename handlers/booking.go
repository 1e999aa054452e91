package handlers

import (
	"net/http"
	"time"

	"homehelper/middleware"
	"homehelper/models"
	"homehelper/services/booking"
	"homehelper/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking wizard and booking queries. Each signed-in
// user drives one wizard; every mutating call persists the wizard's snapshot.
type BookingHandler struct {
	Wizards  *booking.Manager
	Bookings booking.Service
	Catalog  catalog.Service
}

func (h *BookingHandler) wizardFor(c *gin.Context) (*booking.Wizard, bool) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
		return nil, false
	}
	return h.Wizards.WizardFor(c.Request.Context(), userID), true
}

func (h *BookingHandler) wizardState(w *booking.Wizard) gin.H {
	return gin.H{
		"draft":      w.Draft(),
		"step":       w.Step(),
		"canProceed": w.CanProceedToNextStep(),
		"error":      w.LastError(),
	}
}

// StateHandler returns the wizard's current draft, step and gating flag.
func (h *BookingHandler) StateHandler(c *gin.Context) {
	w, ok := h.wizardFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.wizardState(w))
}

// SelectServiceHandler starts a fresh draft from a catalog service.
func (h *BookingHandler) SelectServiceHandler(c *gin.Context) {
	logger := getLogger(c)

	w, ok := h.wizardFor(c)
	if !ok {
		return
	}

	var req struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	svc, err := h.Catalog.GetService(c.Request.Context(), req.ServiceID)
	if err != nil {
		logger.Warn("Service selection failed", zap.String("serviceID", req.ServiceID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if !svc.Available {
		c.JSON(http.StatusConflict, gin.H{"error": "Service is not available for booking"})
		return
	}

	w.SelectService(*svc)
	h.Wizards.Persist(c.Request.Context(), w)
	c.JSON(http.StatusOK, h.wizardState(w))
}

// SetScheduleHandler records the chosen date and start time on the draft.
func (h *BookingHandler) SetScheduleHandler(c *gin.Context) {
	w, ok := h.wizardFor(c)
	if !ok {
		return
	}
	if !w.HasActiveBooking() {
		c.JSON(http.StatusConflict, gin.H{"error": "No booking in progress"})
		return
	}

	var req struct {
		Date string `json:"date" binding:"required"` // RFC 3339
		Time string `json:"time" binding:"required"` // HH:mm
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected RFC 3339"})
		return
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time, expected HH:mm"})
		return
	}

	w.SetSchedule(date, req.Time)
	h.Wizards.Persist(c.Request.Context(), w)
	c.JSON(http.StatusOK, h.wizardState(w))
}

// SetAddressHandler records the service address on the draft.
func (h *BookingHandler) SetAddressHandler(c *gin.Context) {
	w, ok := h.wizardFor(c)
	if !ok {
		return
	}
	if !w.HasActiveBooking() {
		c.JSON(http.StatusConflict, gin.H{"error": "No booking in progress"})
		return
	}

	var addr models.Address
	if err := c.ShouldBindJSON(&addr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	w.SetAddress(addr)
	h.Wizards.Persist(c.Request.Context(), w)
	c.JSON(http.StatusOK, h.wizardState(w))
}

// SetPaymentHandler records the payment method on the draft.
func (h *BookingHandler) SetPaymentHandler(c *gin.Context) {
	w, ok := h.wizardFor(c)
	if !ok {
		return
	}
	if !w.HasActiveBooking() {
		c.JSON(http.StatusConflict, gin.H{"error": "No booking in progress"})
		return
	}

	var req struct {
		PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	w.SetPaymentMethod(req.PaymentMethod)
	h.Wizards.Persist(c.Request.Context(), w)
	c.JSON(http.StatusOK, h.wizardState(w))
}

// SetDetailsHandler merges optional notes and provider choice into the draft.
func (h *BookingHandler) SetDetailsHandler(c *gin.Context) {
	w, ok := h.wizardFor(c)
	if !ok {
		return
	}
	if !w.HasActiveBooking() {
		c.JSON(http.StatusConflict, gin.H{"error": "No booking in progress"})
		return
	}

	var details models.DraftDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	w.SetBookingDetails(details)
	h.Wizards.Persist(c.Request.Context(), w)
	c.JSON(http.StatusOK, h.wizardState(w))
}

// StepHandler moves the wizard cursor: "next", "previous", or an explicit
// step number.
func (h *BookingHandler) StepHandler(c *gin.Context) {
	w, ok := h.wizardFor(c)
	if !ok {
		return
	}

	var req struct {
		Direction string `json:"direction,omitempty"`
		Step      int    `json:"step,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	switch req.Direction {
	case "next":
		w.NextStep()
	case "previous":
		w.PreviousStep()
	case "":
		w.GoToStep(req.Step)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Direction must be 'next' or 'previous'"})
		return
	}

	h.Wizards.Persist(c.Request.Context(), w)
	c.JSON(http.StatusOK, h.wizardState(w))
}

// ConfirmHandler submits the draft as a pending booking.
func (h *BookingHandler) ConfirmHandler(c *gin.Context) {
	logger := getLogger(c)

	w, ok := h.wizardFor(c)
	if !ok {
		return
	}

	created, err := w.ConfirmBooking(c.Request.Context())
	if err != nil {
		status := http.StatusUnprocessableEntity
		switch err {
		case booking.ErrNoActiveDraft:
			status = http.StatusConflict
		case booking.ErrConfirmInFlight:
			status = http.StatusTooManyRequests
		default:
			logger.Error("Booking confirmation failed", zap.Error(err))
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	h.Wizards.Persist(c.Request.Context(), w)
	c.JSON(http.StatusCreated, gin.H{"booking": created})
}

// ClearHandler discards the draft and resets the wizard.
func (h *BookingHandler) ClearHandler(c *gin.Context) {
	w, ok := h.wizardFor(c)
	if !ok {
		return
	}
	w.ClearCurrentBooking()
	h.Wizards.Persist(c.Request.Context(), w)
	c.JSON(http.StatusOK, h.wizardState(w))
}

// CancelHandler cancels one of the user's own bookings.
func (h *BookingHandler) CancelHandler(c *gin.Context) {
	logger := getLogger(c)

	w, ok := h.wizardFor(c)
	if !ok {
		return
	}

	bookingID := c.Param("id")
	var req struct {
		Reason string `json:"reason,omitempty"`
	}
	_ = c.ShouldBindJSON(&req)

	target, err := h.Bookings.GetBooking(c.Request.Context(), bookingID)
	if err != nil || target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if target.UserID != w.UserID() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Booking belongs to another user"})
		return
	}

	if err := w.CancelBooking(c.Request.Context(), bookingID, req.Reason); err != nil {
		logger.Warn("Booking cancellation failed", zap.String("bookingID", bookingID), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

// MyBookingsHandler lists the user's bookings. The filter query narrows the
// list to upcoming or past bookings, or to one status.
func (h *BookingHandler) MyBookingsHandler(c *gin.Context) {
	w, ok := h.wizardFor(c)
	if !ok {
		return
	}

	w.LoadUserBookings(c.Request.Context())

	var bookings []models.Booking
	switch filter := c.Query("filter"); filter {
	case "upcoming":
		bookings = w.UpcomingBookings()
	case "past":
		bookings = w.PastBookings()
	case "":
		bookings = w.Bookings()
	default:
		bookings = w.BookingsByStatus(models.BookingStatus(filter))
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"error":    w.LastError(),
	})
}
