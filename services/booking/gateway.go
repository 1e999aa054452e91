package booking

import (
	"context"

	"homehelper/models"
)

// Gateway abstracts the booking backend the wizard submits to.
type Gateway interface {
	Create(ctx context.Context, submission models.BookingSubmission) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, reason string) error
	GetUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
}
