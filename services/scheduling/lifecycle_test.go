package scheduling

import (
	"testing"
	"time"

	"carebridge/models"
)

func TestProjectSlotStatus(t *testing.T) {
	now := mustCombine(t, "2026-03-10", "12:00")
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name    string
		status  models.SlotStatus
		endTime time.Time
		want    models.SlotStatus
	}{
		{"available before end", models.SlotAvailable, future, models.SlotAvailable},
		{"available past end", models.SlotAvailable, past, models.SlotCompleted},
		{"scheduled before end", models.SlotScheduled, future, models.SlotScheduled},
		{"scheduled past end", models.SlotScheduled, past, models.SlotCompleted},
		{"cancelled stays cancelled", models.SlotCancelled, past, models.SlotCancelled},
		{"end exactly now", models.SlotScheduled, now, models.SlotCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProjectSlotStatus(tc.status, tc.endTime, now)
			if got != tc.want {
				t.Errorf("ProjectSlotStatus(%q, end=%v) = %q, want %q", tc.status, tc.endTime, got, tc.want)
			}
		})
	}
}

func TestProjectSlotStatusIdempotent(t *testing.T) {
	now := mustCombine(t, "2026-03-10", "12:00")
	end := now.Add(-time.Minute)

	once := ProjectSlotStatus(models.SlotScheduled, end, now)
	twice := ProjectSlotStatus(once, end, now)
	if once != twice {
		t.Errorf("projection not idempotent: %q then %q", once, twice)
	}
}

func TestProjectScheduleDoesNotMutateStored(t *testing.T) {
	now := mustCombine(t, "2026-03-10", "12:00")
	schedule := models.Schedule{
		Date:  mustCombine(t, "2026-03-10", "00:00"),
		Venue: "Clinic A",
		Slots: []models.Slot{
			{ID: "s1", StartTime: now.Add(-time.Hour), EndTime: now.Add(-50 * time.Minute), Status: models.SlotScheduled},
			{ID: "s2", StartTime: now.Add(time.Hour), EndTime: now.Add(70 * time.Minute), Status: models.SlotAvailable},
		},
	}

	projected := ProjectSchedule(schedule, now)

	if schedule.Slots[0].Status != models.SlotScheduled {
		t.Errorf("stored slot mutated to %q", schedule.Slots[0].Status)
	}
	if projected.Slots[0].Status != models.SlotCompleted {
		t.Errorf("projected past slot = %q, want %q", projected.Slots[0].Status, models.SlotCompleted)
	}
	if projected.Slots[1].Status != models.SlotAvailable {
		t.Errorf("projected future slot = %q, want %q", projected.Slots[1].Status, models.SlotAvailable)
	}
}

func TestProjectSchedulesPreservesOrder(t *testing.T) {
	now := mustCombine(t, "2026-03-12", "08:00")
	schedules := []models.Schedule{
		{Date: mustCombine(t, "2026-03-10", "00:00")},
		{Date: mustCombine(t, "2026-03-11", "00:00")},
		{Date: mustCombine(t, "2026-03-12", "00:00")},
	}

	projected := ProjectSchedules(schedules, now)
	if len(projected) != len(schedules) {
		t.Fatalf("got %d schedules, want %d", len(projected), len(schedules))
	}
	for i := range schedules {
		if !projected[i].Date.Equal(schedules[i].Date) {
			t.Errorf("schedule %d date reordered", i)
		}
	}
}
