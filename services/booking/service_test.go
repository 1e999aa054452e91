package booking

import (
	"context"
	"testing"
	"time"

	"homehelper/models"
)

type repoStub struct {
	bookings map[string]*models.Booking
	updates  int
}

func newRepoStub(seed ...*models.Booking) *repoStub {
	r := &repoStub{bookings: make(map[string]*models.Booking)}
	for _, b := range seed {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *repoStub) Create(b *models.Booking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *repoStub) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *repoStub) GetByUserID(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *repoStub) GetByProviderID(providerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *repoStub) GetAll() ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (r *repoStub) UpdateStatus(id string, status models.BookingStatus, reason string) error {
	r.updates++
	b := r.bookings[id]
	b.Status = status
	if reason != "" {
		b.CancelReason = reason
	}
	return nil
}

func validSubmission() models.BookingSubmission {
	return models.BookingSubmission{
		UserID:        "u1",
		Service:       models.ServiceRef{ServiceID: "svc-1", Name: "Deep Cleaning", Price: 80, Duration: 120},
		Status:        models.BookingPending,
		Schedule:      models.Schedule{Date: time.Now().Add(24 * time.Hour), Time: "10:00"},
		Address:       models.Address{Street: "12 Elm St", City: "Lahore", Country: "PK"},
		PaymentMethod: models.PaymentCash,
		PaymentStatus: models.PaymentPending,
	}
}

func TestServiceCreate(t *testing.T) {
	repo := newRepoStub()
	svc := &DefaultBookingService{Repo: repo}

	created, err := svc.Create(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected server-issued booking id")
	}
	if created.Status != models.BookingPending || created.PaymentStatus != models.PaymentPending {
		t.Fatalf("expected pending booking, got %s/%s", created.Status, created.PaymentStatus)
	}
	if _, ok := repo.bookings[created.ID]; !ok {
		t.Fatal("expected booking persisted")
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := &DefaultBookingService{Repo: newRepoStub()}

	cases := map[string]func(*models.BookingSubmission){
		"missing user":    func(s *models.BookingSubmission) { s.UserID = "" },
		"missing service": func(s *models.BookingSubmission) { s.Service.ServiceID = "" },
		"missing date":    func(s *models.BookingSubmission) { s.Schedule.Date = time.Time{} },
		"missing time":    func(s *models.BookingSubmission) { s.Schedule.Time = "" },
		"missing payment": func(s *models.BookingSubmission) { s.PaymentMethod = "" },
	}
	for name, mutate := range cases {
		sub := validSubmission()
		mutate(&sub)
		if _, err := svc.Create(context.Background(), sub); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestServiceCancelRejectsCompleted(t *testing.T) {
	repo := newRepoStub(&models.Booking{ID: "b1", UserID: "u1", Status: models.BookingCompleted})
	svc := &DefaultBookingService{Repo: repo}

	if err := svc.Cancel(context.Background(), "b1", ""); err == nil {
		t.Fatal("expected cancellation of a completed booking to be rejected")
	}
	if repo.updates != 0 {
		t.Fatal("expected no status write on rejection")
	}
	if repo.bookings["b1"].Status != models.BookingCompleted {
		t.Fatal("expected stored status untouched")
	}
}

func TestServiceCancelPendingAndConfirmed(t *testing.T) {
	repo := newRepoStub(
		&models.Booking{ID: "b1", Status: models.BookingPending},
		&models.Booking{ID: "b2", Status: models.BookingConfirmed},
	)
	svc := &DefaultBookingService{Repo: repo}

	if err := svc.Cancel(context.Background(), "b1", "changed plans"); err != nil {
		t.Fatalf("cancel pending failed: %v", err)
	}
	if err := svc.Cancel(context.Background(), "b2", ""); err != nil {
		t.Fatalf("cancel confirmed failed: %v", err)
	}
	if repo.bookings["b1"].CancelReason != "changed plans" {
		t.Fatalf("expected reason recorded, got %q", repo.bookings["b1"].CancelReason)
	}
}

func TestServiceUpdateStatusChain(t *testing.T) {
	repo := newRepoStub(&models.Booking{ID: "b1", Status: models.BookingPending})
	svc := &DefaultBookingService{Repo: repo}
	ctx := context.Background()

	for _, status := range []models.BookingStatus{
		models.BookingConfirmed,
		models.BookingInProgress,
		models.BookingCompleted,
	} {
		if _, err := svc.UpdateStatus(ctx, "b1", status); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	// Completed is terminal.
	if _, err := svc.UpdateStatus(ctx, "b1", models.BookingCancelled); err == nil {
		t.Fatal("expected completed booking to reject cancellation")
	}
}

func TestServiceUpdateStatusRejectsSkips(t *testing.T) {
	repo := newRepoStub(&models.Booking{ID: "b1", Status: models.BookingPending})
	svc := &DefaultBookingService{Repo: repo}

	if _, err := svc.UpdateStatus(context.Background(), "b1", models.BookingCompleted); err == nil {
		t.Fatal("expected pending -> completed to be rejected")
	}
}
