package models

import "time"

// BookingStatus tracks a booking along its lifecycle. Transitions are
// monotonic: pending→confirmed→in_progress→completed, or a direct cancellation
// from pending/confirmed followed optionally by a refund.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
	BookingRefunded   BookingStatus = "refunded"
)

// ValidTransition reports whether a booking may move from one status to the
// next. No transition skips a step except direct cancellation from pending or
// confirmed.
func ValidTransition(from, to BookingStatus) bool {
	switch from {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingInProgress || to == BookingCancelled
	case BookingInProgress:
		return to == BookingCompleted
	case BookingCancelled:
		return to == BookingRefunded
	}
	return false
}

// PaymentMethod is the user's chosen way to pay.
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentDebitCard    PaymentMethod = "debit_card"
	PaymentPayPal       PaymentMethod = "paypal"
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// PaymentStatus tracks settlement of a booking's payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Schedule is a chosen date plus a HH:mm start time.
type Schedule struct {
	Date time.Time `bson:"date" json:"date"`
	Time string    `bson:"time" json:"time"`
}

// ServiceRef snapshots the chosen service at selection time so later catalog
// price changes do not alter an in-progress draft.
type ServiceRef struct {
	ServiceID string  `bson:"service_id" json:"serviceId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Duration  int     `bson:"duration" json:"duration"` // minutes
}

// Booking is a confirmed, server-issued booking record.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	UserID        string        `bson:"user_id" json:"userId"`
	ProviderID    string        `bson:"provider_id,omitempty" json:"providerId,omitempty"`
	Service       ServiceRef    `bson:"service" json:"service"`
	Status        BookingStatus `bson:"status" json:"status"`
	Schedule      Schedule      `bson:"schedule" json:"schedule"`
	Address       Address       `bson:"address" json:"address"`
	Notes         string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Price         float64       `bson:"price" json:"price"`
	PaymentMethod PaymentMethod `bson:"payment_method" json:"paymentMethod"`
	PaymentStatus PaymentStatus `bson:"payment_status" json:"paymentStatus"`
	CancelReason  string        `bson:"cancel_reason,omitempty" json:"cancelReason,omitempty"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}

// BookingDraft is the in-progress booking assembled across wizard steps. It
// exists only between service selection and confirmation.
type BookingDraft struct {
	Service       ServiceRef     `json:"service"`
	Schedule      *Schedule      `json:"schedule,omitempty"`
	Address       *Address       `json:"address,omitempty"`
	PaymentMethod *PaymentMethod `json:"paymentMethod,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	ProviderID    string         `json:"providerId,omitempty"`
}

// DraftDetails carries a partial merge into an existing draft.
type DraftDetails struct {
	Notes      *string `json:"notes,omitempty"`
	ProviderID *string `json:"providerId,omitempty"`
}

// BookingSubmission is the payload handed to the booking gateway on confirm.
type BookingSubmission struct {
	UserID        string        `json:"userId"`
	ProviderID    string        `json:"providerId,omitempty"`
	Service       ServiceRef    `json:"service"`
	Status        BookingStatus `json:"status"`
	Schedule      Schedule      `json:"schedule"`
	Address       Address       `json:"address"`
	Notes         string        `json:"notes,omitempty"`
	Price         float64       `json:"price"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}
