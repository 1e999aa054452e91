package booking

import (
	"context"
	"fmt"

	bookingRepo "homehelper/database/repository/booking"
	"homehelper/models"
	"homehelper/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderScheduler enqueues a reminder for an upcoming booking. Implemented
// by the workers package; nil disables reminders.
type ReminderScheduler interface {
	ScheduleBookingReminder(booking models.Booking) error
}

// Service defines the backend booking operations. The wizard consumes the
// Gateway subset; handlers and admin flows use the rest.
type Service interface {
	Gateway
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	GetProviderBookings(ctx context.Context, providerID string) ([]models.Booking, error)
	GetAllBookings(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Reminders ReminderScheduler
}

// Create validates and persists a pending booking.
func (s *DefaultBookingService) Create(ctx context.Context, submission models.BookingSubmission) (*models.Booking, error) {
	if submission.UserID == "" {
		return nil, fmt.Errorf("booking requires an authenticated user")
	}
	if submission.Service.ServiceID == "" {
		return nil, fmt.Errorf("booking requires a selected service")
	}
	if submission.Schedule.Date.IsZero() || submission.Schedule.Time == "" {
		return nil, fmt.Errorf("booking requires a scheduled date and time")
	}
	if submission.PaymentMethod == "" {
		return nil, fmt.Errorf("booking requires a payment method")
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        submission.UserID,
		ProviderID:    submission.ProviderID,
		Service:       submission.Service,
		Status:        models.BookingPending,
		Schedule:      submission.Schedule,
		Address:       submission.Address,
		Notes:         submission.Notes,
		Price:         submission.Price,
		PaymentMethod: submission.PaymentMethod,
		PaymentStatus: models.PaymentPending,
	}

	if err := s.Repo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleBookingReminder(*booking); err != nil {
			utils.GetLogger().Warn("booking: failed to schedule reminder",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	return booking, nil
}

// Cancel transitions a booking to cancelled. Only pending and confirmed
// bookings may be cancelled; anything further along is rejected.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID, reason string) error {
	booking, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	if !models.ValidTransition(booking.Status, models.BookingCancelled) {
		return fmt.Errorf("cannot cancel a %s booking", booking.Status)
	}
	if err := s.Repo.UpdateStatus(bookingID, models.BookingCancelled, reason); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	return nil
}

// GetUserBookings lists a user's bookings in insertion order.
func (s *DefaultBookingService) GetUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// GetBooking fetches one booking.
func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return booking, nil
}

// GetProviderBookings lists the bookings assigned to a provider.
func (s *DefaultBookingService) GetProviderBookings(ctx context.Context, providerID string) ([]models.Booking, error) {
	bookings, err := s.Repo.GetByProviderID(providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider bookings: %w", err)
	}
	return bookings, nil
}

// GetAllBookings lists every booking. Admin use.
func (s *DefaultBookingService) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus moves a booking along its status chain, rejecting transitions
// that skip a step.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", id)
	}
	if !models.ValidTransition(booking.Status, status) {
		return nil, fmt.Errorf("invalid status transition %s -> %s", booking.Status, status)
	}
	if err := s.Repo.UpdateStatus(id, status, ""); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	booking.Status = status
	return booking, nil
}
