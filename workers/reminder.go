package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homehelper/config"
	"homehelper/models"
	"homehelper/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingReminder = "booking:reminder"

// ReminderPayload is the task body for a scheduled booking reminder.
type ReminderPayload struct {
	BookingID   string `json:"bookingId"`
	UserID      string `json:"userId"`
	ProviderID  string `json:"providerId,omitempty"`
	ServiceName string `json:"serviceName"`
	FireDate    string `json:"fireDate"` // RFC3339
}

// AsynqReminderScheduler enqueues booking reminders on the asynq queue, timed
// ahead of the appointment by the configured lead.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

func NewReminderScheduler(client *asynq.Client) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: client}
}

// ScheduleBookingReminder schedules one reminder for the booking. Bookings
// whose reminder moment already passed are skipped without error.
func (s *AsynqReminderScheduler) ScheduleBookingReminder(booking models.Booking) error {
	if s.Client == nil {
		return fmt.Errorf("reminder scheduler has no queue client")
	}

	fireAt, err := reminderTime(booking.Schedule)
	if err != nil {
		return fmt.Errorf("cannot schedule reminder for booking %s: %w", booking.ID, err)
	}
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := ReminderPayload{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		ProviderID:  booking.ProviderID,
		ServiceName: booking.Service.Name,
		FireDate:    fireAt.Format(time.RFC3339),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeBookingReminder, b)
	if _, err := s.Client.Enqueue(task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("failed to enqueue reminder for booking %s: %w", booking.ID, err)
	}
	return nil
}

// reminderTime resolves the appointment instant and subtracts the lead time.
func reminderTime(schedule models.Schedule) (time.Time, error) {
	clock, err := time.Parse("15:04", schedule.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid schedule time %q", schedule.Time)
	}

	d := schedule.Date
	appointment := time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, d.Location())

	lead := config.AppConfig.ReminderLeadHours
	if lead <= 0 {
		lead = 2
	}
	return appointment.Add(-time.Duration(lead) * time.Hour), nil
}

// InitReminderWorker runs the async worker in the background.
func InitReminderWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingReminder, handleReminderTask)

	go func() {
		logger := utils.GetLogger()
		logger.Info("Starting reminder worker")

		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("Reminder worker exhausted start attempts")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

func handleReminderTask(ctx context.Context, task *asynq.Task) error {
	var p ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		utils.GetLogger().Error("Reminder task has invalid payload", zap.Error(err))
		return err
	}

	// Delivery channel is a log line for now; push notifications hang off here.
	utils.GetLogger().Info("Booking reminder due",
		zap.String("bookingID", p.BookingID),
		zap.String("userID", p.UserID),
		zap.String("service", p.ServiceName),
		zap.String("fireDate", p.FireDate))
	return nil
}
