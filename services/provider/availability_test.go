package provider

import (
	"testing"
	"time"

	"homehelper/models"
)

type availabilityRepoStub struct {
	weekly map[string][]models.Availability
}

func newAvailabilityRepoStub() *availabilityRepoStub {
	return &availabilityRepoStub{weekly: make(map[string][]models.Availability)}
}

func (r *availabilityRepoStub) SetWeekly(providerID string, slots []models.Availability) error {
	r.weekly[providerID] = append([]models.Availability(nil), slots...)
	return nil
}

func (r *availabilityRepoStub) GetWeekly(providerID string) ([]models.Availability, error) {
	return r.weekly[providerID], nil
}

func TestSetWeeklyAvailabilityValidation(t *testing.T) {
	svc := NewAvailabilityService(newAvailabilityRepoStub())

	cases := []struct {
		name  string
		slots []models.Availability
	}{
		{"day out of range", []models.Availability{{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"}}},
		{"negative day", []models.Availability{{DayOfWeek: -1, StartTime: "09:00", EndTime: "17:00"}}},
		{"bad start time", []models.Availability{{DayOfWeek: 1, StartTime: "9am", EndTime: "17:00"}}},
		{"bad end time", []models.Availability{{DayOfWeek: 1, StartTime: "09:00", EndTime: "25:00"}}},
		{"start equals end", []models.Availability{{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}}},
		{"start after end", []models.Availability{{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.SetWeeklyAvailability("p1", tc.slots); err == nil {
				t.Fatalf("slots %v accepted", tc.slots)
			}
		})
	}
}

func TestSetAndGetWeeklyAvailability(t *testing.T) {
	svc := NewAvailabilityService(newAvailabilityRepoStub())

	slots := []models.Availability{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		{DayOfWeek: 3, StartTime: "13:00", EndTime: "18:00", IsAvailable: true},
	}
	if err := svc.SetWeeklyAvailability("p1", slots); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := svc.GetWeeklyAvailability("p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d slots, want 2", len(got))
	}
}

func TestIsAvailableAt(t *testing.T) {
	svc := NewAvailabilityService(newAvailabilityRepoStub())

	slots := []models.Availability{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsAvailable: false},
	}
	if err := svc.SetWeeklyAvailability("p1", slots); err != nil {
		t.Fatalf("set: %v", err)
	}

	// 2026-09-07 is a Monday.
	monday := func(h, m int) time.Time {
		return time.Date(2026, 9, 7, h, m, 0, 0, time.UTC)
	}

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"inside window", monday(10, 30), true},
		{"window start is inclusive", monday(9, 0), true},
		{"window end is exclusive", monday(17, 0), false},
		{"before window", monday(8, 59), false},
		{"disabled slot", monday(10, 30).AddDate(0, 0, 1), false},
		{"no slot that day", monday(10, 30).AddDate(0, 0, 2), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.IsAvailableAt("p1", tc.at)
			if err != nil {
				t.Fatalf("IsAvailableAt: %v", err)
			}
			if got != tc.want {
				t.Fatalf("IsAvailableAt(%v) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}

	got, err := svc.IsAvailableAt("unknown", monday(10, 0))
	if err != nil {
		t.Fatalf("IsAvailableAt unknown provider: %v", err)
	}
	if got {
		t.Fatal("provider with no schedule reported available")
	}
}
