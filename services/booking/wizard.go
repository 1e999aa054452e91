// Package booking owns the multi-step booking flow: the in-progress draft
// assembled across wizard steps, the user's booking list, and the backend
// service the wizard submits to.
package booking

import (
	"context"
	"sync"
	"time"

	"homehelper/models"
)

// Wizard steps: service selection, schedule, address, payment.
const (
	StepService  = 1
	StepSchedule = 2
	StepAddress  = 3
	StepPayment  = 4
)

// Wizard owns one user's booking draft and step cursor, and mirrors the
// user's confirmed bookings. Persistence is delegated to the Gateway; the
// wizard itself never talks to storage.
type Wizard struct {
	gateway Gateway
	userID  string
	now     func() time.Time

	mu         sync.Mutex
	draft      *models.BookingDraft
	step       int
	bookings   []models.Booking
	loading    bool
	confirming bool
	lastError  string
}

// NewWizard constructs a Wizard for one user. A nil now falls back to
// time.Now.
func NewWizard(gateway Gateway, userID string, now func() time.Time) *Wizard {
	if now == nil {
		now = time.Now
	}
	return &Wizard{
		gateway: gateway,
		userID:  userID,
		now:     now,
		step:    StepService,
	}
}

// UserID returns the owning user's ID.
func (w *Wizard) UserID() string { return w.userID }

// SelectService starts a fresh draft for the given service, discarding any
// prior progress, and snapshots its price and duration so later catalog
// changes do not alter the draft. Moves the cursor to the schedule step.
func (w *Wizard) SelectService(service models.Service) {
	w.mu.Lock()
	defer w.mu.Unlock()

	duration := service.Duration
	if duration == 0 {
		duration = 60
	}
	w.draft = &models.BookingDraft{
		Service: models.ServiceRef{
			ServiceID: service.ID,
			Name:      service.Name,
			Price:     service.Price,
			Duration:  duration,
		},
	}
	w.step = StepSchedule
	w.lastError = ""
}

// HasActiveBooking reports whether a draft is in progress.
func (w *Wizard) HasActiveBooking() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft != nil
}

// SetSchedule records the chosen date and HH:mm start time. No-op without a
// draft; callers guard with HasActiveBooking.
func (w *Wizard) SetSchedule(date time.Time, timeOfDay string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return
	}
	w.draft.Schedule = &models.Schedule{Date: date, Time: timeOfDay}
}

// SetAddress records the service address. No-op without a draft.
func (w *Wizard) SetAddress(address models.Address) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return
	}
	addr := address
	w.draft.Address = &addr
}

// SetPaymentMethod records the chosen payment method. No-op without a draft.
func (w *Wizard) SetPaymentMethod(method models.PaymentMethod) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return
	}
	m := method
	w.draft.PaymentMethod = &m
}

// SetBookingDetails merges optional detail fields into the draft. No-op
// without a draft.
func (w *Wizard) SetBookingDetails(details models.DraftDetails) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return
	}
	if details.Notes != nil {
		w.draft.Notes = *details.Notes
	}
	if details.ProviderID != nil {
		w.draft.ProviderID = *details.ProviderID
	}
}

// NextStep advances the cursor, capped at the payment step.
func (w *Wizard) NextStep() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step < StepPayment {
		w.step++
	}
}

// PreviousStep moves the cursor back, floored at the service step.
func (w *Wizard) PreviousStep() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepService {
		w.step--
	}
}

// GoToStep moves the cursor to an arbitrary step, clamped to the valid range.
func (w *Wizard) GoToStep(step int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if step < StepService {
		step = StepService
	}
	if step > StepPayment {
		step = StepPayment
	}
	w.step = step
}

// Step returns the current cursor position.
func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// CanProceedToNextStep reports whether the current step's required fields are
// filled. False, never an error, when no draft exists.
func (w *Wizard) CanProceedToNextStep() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return false
	}
	switch w.step {
	case StepService:
		return w.draft.Service.ServiceID != ""
	case StepSchedule:
		return w.draft.Schedule != nil && !w.draft.Schedule.Date.IsZero() && w.draft.Schedule.Time != ""
	case StepAddress:
		return w.draft.Address != nil
	case StepPayment:
		return w.draft.PaymentMethod != nil
	}
	return false
}

// ConfirmBooking submits the draft as a pending booking. On success the
// returned booking is appended to the list, the draft is cleared and the
// cursor resets. On failure the draft stays intact so the user can retry, and
// the error is returned. A second confirm while one is in flight fails with
// ErrConfirmInFlight.
func (w *Wizard) ConfirmBooking(ctx context.Context) (*models.Booking, error) {
	w.mu.Lock()
	if w.draft == nil {
		w.mu.Unlock()
		return nil, ErrNoActiveDraft
	}
	if w.confirming {
		w.mu.Unlock()
		return nil, ErrConfirmInFlight
	}
	w.confirming = true
	w.loading = true
	w.lastError = ""
	draft := *w.draft
	w.mu.Unlock()

	submission := models.BookingSubmission{
		UserID:        w.userID,
		ProviderID:    draft.ProviderID,
		Service:       draft.Service,
		Status:        models.BookingPending,
		Notes:         draft.Notes,
		Price:         draft.Service.Price,
		PaymentStatus: models.PaymentPending,
	}
	if draft.Schedule != nil {
		submission.Schedule = *draft.Schedule
	}
	if draft.Address != nil {
		submission.Address = *draft.Address
	}
	if draft.PaymentMethod != nil {
		submission.PaymentMethod = *draft.PaymentMethod
	}

	created, err := w.gateway.Create(ctx, submission)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.confirming = false
	w.loading = false
	if err != nil {
		w.lastError = err.Error()
		return nil, err
	}

	w.bookings = append(w.bookings, *created)
	w.draft = nil
	w.step = StepService
	return created, nil
}

// CancelBooking asks the backend to cancel a booking; on success only the
// matching local booking's status flips to cancelled. On failure the list is
// untouched and the error is returned.
func (w *Wizard) CancelBooking(ctx context.Context, bookingID, reason string) error {
	w.mu.Lock()
	w.loading = true
	w.lastError = ""
	w.mu.Unlock()

	err := w.gateway.Cancel(ctx, bookingID, reason)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = false
	if err != nil {
		w.lastError = err.Error()
		return err
	}
	for i := range w.bookings {
		if w.bookings[i].ID == bookingID {
			w.bookings[i].Status = models.BookingCancelled
		}
	}
	return nil
}

// LoadUserBookings replaces the local list with the backend's result. This is
// a passive refresh: failures are recorded but not returned, and the existing
// list is kept.
func (w *Wizard) LoadUserBookings(ctx context.Context) {
	w.mu.Lock()
	w.loading = true
	w.lastError = ""
	w.mu.Unlock()

	bookings, err := w.gateway.GetUserBookings(ctx, w.userID)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = false
	if err != nil {
		w.lastError = err.Error()
		return
	}
	w.bookings = bookings
}

// ClearCurrentBooking discards the draft unconditionally and resets the
// cursor. Idempotent.
func (w *Wizard) ClearCurrentBooking() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = nil
	w.step = StepService
	w.lastError = ""
}

// Draft returns a copy of the in-progress draft, or nil when absent.
func (w *Wizard) Draft() *models.BookingDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return nil
	}
	draft := *w.draft
	return &draft
}

// Bookings returns a copy of the local booking list in its stable order.
func (w *Wizard) Bookings() []models.Booking {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.Booking, len(w.bookings))
	copy(out, w.bookings)
	return out
}

// LastError returns the most recent recorded failure message, or "".
func (w *Wizard) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastError
}

// IsLoading reports whether a gateway call is in flight.
func (w *Wizard) IsLoading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading
}

// BookingsByStatus filters the local list by status.
func (w *Wizard) BookingsByStatus(status models.BookingStatus) []models.Booking {
	var out []models.Booking
	for _, b := range w.Bookings() {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

// UpcomingBookings returns bookings scheduled in the future that are not
// cancelled.
func (w *Wizard) UpcomingBookings() []models.Booking {
	now := w.now()
	var out []models.Booking
	for _, b := range w.Bookings() {
		if b.Schedule.Date.After(now) && b.Status != models.BookingCancelled {
			out = append(out, b)
		}
	}
	return out
}

// PastBookings returns bookings whose date has passed or that are completed.
func (w *Wizard) PastBookings() []models.Booking {
	now := w.now()
	var out []models.Booking
	for _, b := range w.Bookings() {
		if !b.Schedule.Date.After(now) || b.Status == models.BookingCompleted {
			out = append(out, b)
		}
	}
	return out
}
