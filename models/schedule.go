package models

import "time"

// SlotStatus is the lifecycle state of a bookable slot.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotScheduled SlotStatus = "scheduled"
	SlotCompleted SlotStatus = "completed"
	SlotCancelled SlotStatus = "cancelled"
)

// Slot is one fixed-duration bookable time unit within a clinic schedule.
// PatientID and BookingID are set only while the slot is scheduled or completed.
type Slot struct {
	ID        string     `bson:"id" json:"id"`
	StartTime time.Time  `bson:"startTime" json:"startTime"`
	EndTime   time.Time  `bson:"endTime" json:"endTime"`
	Status    SlotStatus `bson:"status" json:"status"`
	PatientID string     `bson:"patientId,omitempty" json:"patientId,omitempty"`
	BookingID string     `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
}

// Schedule is a doctor's full slot list and venue for one calendar date.
// Date is stored as a real datetime (midnight in the clinic timezone); the
// slots partition [StartTime, EndTime) into contiguous fixed-size intervals.
type Schedule struct {
	Date      time.Time `bson:"date" json:"date"`
	Venue     string    `bson:"venue" json:"venue"`
	StartTime time.Time `bson:"startTime" json:"startTime"`
	EndTime   time.Time `bson:"endTime" json:"endTime"`
	Slots     []Slot    `bson:"slots" json:"slots"`
}

// HasActiveBookings reports whether any slot in the schedule is currently
// scheduled. Used to refuse overwriting a date that still carries bookings.
func (s Schedule) HasActiveBookings() bool {
	for _, slot := range s.Slots {
		if slot.Status == SlotScheduled {
			return true
		}
	}
	return false
}
