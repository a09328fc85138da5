package cron

import (
	"encoding/json"
	"time"

	"carebridge/config"
	"carebridge/models"

	"github.com/hibiken/asynq"
)

const TypeAppointmentReminder = "appointment:reminder"

// ReminderLeadTime is how long before the slot start the reminder fires.
const ReminderLeadTime = 30 * time.Minute

// ReminderPayload is the task payload for an appointment reminder.
type ReminderPayload struct {
	BookingID string    `json:"bookingId"`
	PatientID string    `json:"patientId"`
	DoctorID  string    `json:"doctorId"`
	StartTime time.Time `json:"startTime"`
	Venue     string    `json:"venue"`
}

func reminderRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// AsynqReminderScheduler enqueues appointment reminder tasks on the shared
// Redis queue. It satisfies the booking service's ReminderScheduler.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewAsynqReminderScheduler creates a scheduler backed by the reminder queue.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: asynq.NewClient(reminderRedisOpts())}
}

// ScheduleReminder enqueues a reminder to fire shortly before the booking
// starts. Bookings that start too soon get no reminder.
func (s *AsynqReminderScheduler) ScheduleReminder(booking *models.Booking) error {
	fireAt := booking.StartTime.Add(-ReminderLeadTime)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload := ReminderPayload{
		BookingID: booking.ID,
		PatientID: booking.PatientID,
		DoctorID:  booking.DoctorID,
		StartTime: booking.StartTime,
		Venue:     booking.Venue,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeAppointmentReminder, b)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(fireAt))
	return err
}
