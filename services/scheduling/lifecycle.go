package scheduling

import (
	"time"

	"carebridge/models"
)

// ProjectSlotStatus returns the effective status of a slot or booking at the
// given instant: anything not cancelled whose end time has passed reads as
// completed. Stored state is never mutated; the projection is applied on
// every read path instead.
func ProjectSlotStatus(status models.SlotStatus, endTime time.Time, now time.Time) models.SlotStatus {
	if status != models.SlotCancelled && !endTime.After(now) {
		return models.SlotCompleted
	}
	return status
}

// ProjectSchedule returns a copy of the schedule with every slot's status
// projected to the given instant. Projection is idempotent: applying it twice
// at the same instant yields identical output.
func ProjectSchedule(schedule models.Schedule, now time.Time) models.Schedule {
	projected := schedule
	projected.Slots = make([]models.Slot, len(schedule.Slots))
	for i, slot := range schedule.Slots {
		slot.Status = ProjectSlotStatus(slot.Status, slot.EndTime, now)
		projected.Slots[i] = slot
	}
	return projected
}

// ProjectSchedules projects every schedule in the list.
func ProjectSchedules(schedules []models.Schedule, now time.Time) []models.Schedule {
	projected := make([]models.Schedule, len(schedules))
	for i, s := range schedules {
		projected[i] = ProjectSchedule(s, now)
	}
	return projected
}
