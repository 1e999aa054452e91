package provider

import (
	"fmt"
	"time"

	providerRepo "homehelper/database/repository/provider"
	"homehelper/models"
)

// AvailabilityService manages a provider's weekly working windows.
type AvailabilityService interface {
	SetWeeklyAvailability(providerID string, slots []models.Availability) error
	GetWeeklyAvailability(providerID string) ([]models.Availability, error)
	IsAvailableAt(providerID string, at time.Time) (bool, error)
}

// DefaultAvailabilityService validates and persists weekly availability.
type DefaultAvailabilityService struct {
	Repo providerRepo.AvailabilityRepository
}

func NewAvailabilityService(repo providerRepo.AvailabilityRepository) AvailabilityService {
	return &DefaultAvailabilityService{Repo: repo}
}

// SetWeeklyAvailability replaces the provider's weekly schedule. Every slot
// must use HH:mm times with start strictly before end, and a day in 0..6.
func (s *DefaultAvailabilityService) SetWeeklyAvailability(providerID string, slots []models.Availability) error {
	if providerID == "" {
		return fmt.Errorf("provider id is required")
	}
	for i, slot := range slots {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			return fmt.Errorf("slot %d: day of week %d out of range", i, slot.DayOfWeek)
		}
		start, err := parseClock(slot.StartTime)
		if err != nil {
			return fmt.Errorf("slot %d: invalid start time %q", i, slot.StartTime)
		}
		end, err := parseClock(slot.EndTime)
		if err != nil {
			return fmt.Errorf("slot %d: invalid end time %q", i, slot.EndTime)
		}
		if !start.Before(end) {
			return fmt.Errorf("slot %d: start %s must come before end %s", i, slot.StartTime, slot.EndTime)
		}
	}
	if err := s.Repo.SetWeekly(providerID, slots); err != nil {
		return fmt.Errorf("failed to save availability: %w", err)
	}
	return nil
}

// GetWeeklyAvailability returns the stored schedule, empty when unset.
func (s *DefaultAvailabilityService) GetWeeklyAvailability(providerID string) ([]models.Availability, error) {
	slots, err := s.Repo.GetWeekly(providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	return slots, nil
}

// IsAvailableAt reports whether the instant falls inside an available window.
// A provider with no schedule on record counts as unavailable.
func (s *DefaultAvailabilityService) IsAvailableAt(providerID string, at time.Time) (bool, error) {
	slots, err := s.Repo.GetWeekly(providerID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch availability: %w", err)
	}

	day := int(at.Weekday())
	clock := time.Date(0, 1, 1, at.Hour(), at.Minute(), 0, 0, time.UTC)
	for _, slot := range slots {
		if !slot.IsAvailable || slot.DayOfWeek != day {
			continue
		}
		start, err := parseClock(slot.StartTime)
		if err != nil {
			continue
		}
		end, err := parseClock(slot.EndTime)
		if err != nil {
			continue
		}
		if !clock.Before(start) && clock.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

func parseClock(value string) (time.Time, error) {
	return time.Parse("15:04", value)
}
