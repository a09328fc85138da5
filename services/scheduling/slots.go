package scheduling

import (
	"fmt"
	"time"

	"carebridge/models"
	"carebridge/utils"

	"github.com/google/uuid"
)

// SlotDuration is the fixed length of every bookable slot.
const SlotDuration = 10 * time.Minute

// Wire formats for calendar dates and clock times.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ClinicTimezone is the fixed offset all schedule timestamps are built in.
var ClinicTimezone = time.FixedZone("IST", 5*3600+30*60)

// ParseDate parses a strict YYYY-MM-DD calendar date into midnight of that
// day in the clinic timezone.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, ClinicTimezone)
	if err != nil {
		return time.Time{}, utils.ValidationError{Reason: "invalid date format, use YYYY-MM-DD"}
	}
	return t, nil
}

// CombineDateTime combines a calendar date and an HH:mm time of day into an
// absolute timestamp in the clinic timezone.
func CombineDateTime(date, clock string) (time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return time.Time{}, utils.ValidationError{Reason: "invalid time format, use HH:mm"}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, ClinicTimezone), nil
}

// GenerateSlots tiles [start, end) into contiguous SlotDuration slots, all
// available with no patient attached. The final slot may be truncated short
// of end only if the window is not a multiple of SlotDuration; the last slot
// never extends past end.
func GenerateSlots(start, end time.Time) ([]models.Slot, error) {
	if !end.After(start) {
		return nil, utils.ValidationError{Reason: fmt.Sprintf(
			"end time %s must be after start time %s",
			end.Format(TimeLayout), start.Format(TimeLayout))}
	}

	var slots []models.Slot
	for current := start; current.Before(end); current = current.Add(SlotDuration) {
		slotEnd := current.Add(SlotDuration)
		if slotEnd.After(end) {
			slotEnd = end
		}
		slots = append(slots, models.Slot{
			ID:        uuid.New().String(),
			StartTime: current,
			EndTime:   slotEnd,
			Status:    models.SlotAvailable,
		})
	}
	return slots, nil
}
