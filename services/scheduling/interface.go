package scheduling

import (
	"time"

	"carebridge/models"
)

// ScheduleService manages a doctor's clinic schedules and slots.
type ScheduleService interface {
	// AddSchedule generates the slot list for [startTime, endTime) on the
	// given date and stores it under the doctor. Replacing a date whose
	// slots still carry bookings is rejected.
	AddSchedule(doctorID, date, startTime, endTime, venue string) (*models.Schedule, error)

	// GetSchedules returns the doctor's schedules sorted by date ascending,
	// with slot statuses projected to the given instant.
	GetSchedules(doctorID string, now time.Time) ([]models.Schedule, error)

	// UpdateSlotStatus locates a slot by ID across all schedule entries and
	// sets its status, and optionally its patient, in place.
	UpdateSlotStatus(doctorID, slotID string, status models.SlotStatus, patientID string) error
}
