package models

import "time"

// Booking is the authoritative record of one reserved slot. The doctor's
// embedded slot references it by ID and the patient's appointment list is a
// query over this collection, so the two views can never drift apart.
type Booking struct {
	ID        string     `bson:"id" json:"id"`
	DoctorID  string     `bson:"doctorId" json:"doctorId"`
	PatientID string     `bson:"patientId" json:"patientId"`
	Date      time.Time  `bson:"date" json:"date"`
	SlotID    string     `bson:"slotId" json:"slotId"`
	StartTime time.Time  `bson:"startTime" json:"startTime"`
	EndTime   time.Time  `bson:"endTime" json:"endTime"`
	Venue     string     `bson:"venue" json:"venue"`
	Status    SlotStatus `bson:"status" json:"status"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}

// Appointment is the patient-facing view of a booking, decorated with the
// doctor's public details.
type Appointment struct {
	ID             string     `json:"id"`
	DoctorID       string     `json:"doctorId"`
	DoctorName     string     `json:"doctorName,omitempty"`
	Specialization string     `json:"specialization,omitempty"`
	Date           time.Time  `json:"date"`
	StartTime      time.Time  `json:"startTime"`
	EndTime        time.Time  `json:"endTime"`
	Venue          string     `json:"venue"`
	Status         SlotStatus `json:"status"`
}

// BookingRequest is the payload for booking a slot.
type BookingRequest struct {
	DoctorID  string `json:"doctorId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Venue     string `json:"venue" binding:"required"`
	SlotID    string `json:"slotId" binding:"required"`
}
