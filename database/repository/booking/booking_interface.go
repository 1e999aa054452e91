package bookingRepo

import "homehelper/models"

// BookingRepository defines persistence operations for booking records.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	GetByUserID(userID string) ([]models.Booking, error)
	GetByProviderID(providerID string) ([]models.Booking, error)
	GetAll() ([]models.Booking, error)
	UpdateStatus(id string, status models.BookingStatus, reason string) error
}
